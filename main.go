package main

import (
	"stayvista_service/startup"
	"stayvista_service/startup/config"
)

func main() {
	config := config.NewConfig()
	server := startup.NewServer(config)
	server.Start()
}

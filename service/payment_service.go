package application

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/errors"
)

// PaymentService talks to the payment gateway, an opaque external service
// with a Stripe-shaped payment intent endpoint.
type PaymentService struct {
	apiURL    string
	secretKey string
	client    *http.Client
	cb        *gobreaker.CircuitBreaker
	logger    *logrus.Logger
	tracer    trace.Tracer
}

func NewPaymentService(apiURL, secretKey string, logger *logrus.Logger, tracer trace.Tracer) *PaymentService {
	if apiURL == "" {
		apiURL = "https://api.stripe.com"
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	return &PaymentService{
		apiURL:    apiURL,
		secretKey: secretKey,
		client:    httpClient,
		cb:        CircuitBreaker("paymentService"),
		logger:    logger,
		tracer:    tracer,
	}
}

// CreatePaymentIntent converts the amount to integer minor units and asks
// the gateway for a client secret. Invalid amounts are rejected before the
// gateway is contacted.
func (service *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	ctx, span := service.tracer.Start(ctx, "PaymentService.CreatePaymentIntent")
	defer span.End()

	cents, err := toMinorUnits(price)
	if err != nil {
		return "", err
	}

	result, breakerErr := service.cb.Execute(func() (interface{}, error) {
		return service.requestIntent(ctx, cents)
	})
	if breakerErr != nil {
		service.logger.Errorf("payment gateway call failed: %s", breakerErr)
		return "", fmt.Errorf(errors.PaymentGatewayError)
	}

	clientSecret, ok := result.(string)
	if !ok {
		return "", fmt.Errorf(errors.PaymentGatewayError)
	}

	return clientSecret, nil
}

func (service *PaymentService) requestIntent(ctx context.Context, cents int64) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, service.apiURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+service.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := service.client.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned status %d", response.StatusCode)
	}

	var intent struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(response.Body).Decode(&intent); err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}

// toMinorUnits converts a major-unit amount to integer cents. Amounts
// below one cent or with a sub-cent remainder are invalid: truncating
// them would silently change what the guest is charged.
func toMinorUnits(price float64) (int64, error) {
	if price <= 0 {
		return 0, fmt.Errorf(errors.InvalidPaymentAmountError)
	}

	minor := price * 100
	cents := math.Round(minor)
	if cents < 1 || math.Abs(minor-cents) > 1e-6 {
		return 0, fmt.Errorf(errors.InvalidPaymentAmountError)
	}

	return int64(cents), nil
}

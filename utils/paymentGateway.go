package utils

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rashinkp/byway-sub000/config"

	"github.com/go-resty/resty/v2"
)

type stripePaymentIntent struct {
	ID             string `json:"id"`
	AmountReceived int64  `json:"amount_received"` // smallest currency unit
	Currency       string `json:"currency"`
	Status         string `json:"status"`
}

// VerifyStripePayment looks up a payment intent and returns the amount
// actually received. Only succeeded intents count.
func VerifyStripePayment(paymentIntentID string) (float64, string, error) {
	client := resty.New()

	resp, err := client.R().
		SetAuthToken(config.AppConfig.StripeSecretKey).
		Get("https://api.stripe.com/v1/payment_intents/" + paymentIntentID)
	if err != nil {
		return 0, "", fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, string(resp.Body()), fmt.Errorf("stripe returned status %d", resp.StatusCode())
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		return 0, string(resp.Body()), fmt.Errorf("failed to parse stripe response: %w", err)
	}
	if intent.Status != "succeeded" {
		return 0, string(resp.Body()), fmt.Errorf("payment intent status is %s", intent.Status)
	}

	return float64(intent.AmountReceived) / 100, string(resp.Body()), nil
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type paypalCaptureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// paypalAccessToken fetches an OAuth token using the client credentials
func paypalAccessToken(client *resty.Client) (string, error) {
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.PayPalClientID, config.AppConfig.PayPalSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		Post(config.AppConfig.PayPalBaseURL + "/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("paypal token returned status %d", resp.StatusCode())
	}

	var token paypalTokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("failed to parse paypal token response: %w", err)
	}

	return token.AccessToken, nil
}

// CapturePayPalOrder captures an approved PayPal order and returns the
// captured amount.
func CapturePayPalOrder(orderID string) (float64, string, error) {
	client := resty.New()

	token, err := paypalAccessToken(client)
	if err != nil {
		return 0, "", err
	}

	resp, err := client.R().
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		Post(config.AppConfig.PayPalBaseURL + "/v2/checkout/orders/" + orderID + "/capture")
	if err != nil {
		return 0, "", fmt.Errorf("paypal capture request failed: %w", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return 0, string(resp.Body()), fmt.Errorf("paypal capture returned status %d", resp.StatusCode())
	}

	var capture paypalCaptureResponse
	if err := json.Unmarshal(resp.Body(), &capture); err != nil {
		return 0, string(resp.Body()), fmt.Errorf("failed to parse paypal capture response: %w", err)
	}
	if capture.Status != "COMPLETED" {
		return 0, string(resp.Body()), fmt.Errorf("paypal order status is %s", capture.Status)
	}

	total := 0.0
	for _, unit := range capture.PurchaseUnits {
		for _, cap := range unit.Payments.Captures {
			if cap.Status != "COMPLETED" {
				continue
			}
			value, err := strconv.ParseFloat(cap.Amount.Value, 64)
			if err != nil {
				continue
			}
			total += value
		}
	}

	return total, string(resp.Body()), nil
}

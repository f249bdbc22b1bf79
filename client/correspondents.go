package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// activeConfiguration is the wire shape of the provider's active
// configuration feed: correspondents grouped by country.
type activeConfiguration struct {
	Countries []struct {
		Country        string `json:"country"`
		Correspondents []struct {
			Correspondent string `json:"correspondent"`
			Currency      string `json:"currency"`
		} `json:"correspondents"`
	} `json:"countries"`
}

// GetActiveConfiguration fetches the provider's active configuration
// document as raw JSON. Most callers want ListCorrespondents instead.
func (c *Client) GetActiveConfiguration(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/active-conf", "/active-conf", nil)
}

// ListCorrespondents fetches the active configuration and flattens the
// country -> correspondent nesting into one list, each entry carrying its
// source country. The document is fetched fresh on every call; callers
// needing freshness control cache it themselves.
func (c *Client) ListCorrespondents(ctx context.Context) ([]Correspondent, error) {
	return c.listCorrespondents(ctx, "")
}

// ListCorrespondentsByCountry is ListCorrespondents restricted to one
// ISO country code.
func (c *Client) ListCorrespondentsByCountry(ctx context.Context, country string) ([]Correspondent, error) {
	if country == "" {
		return nil, &ValidationError{Field: "country", Message: "required"}
	}
	return c.listCorrespondents(ctx, country)
}

func (c *Client) listCorrespondents(ctx context.Context, country string) ([]Correspondent, error) {
	raw, err := c.do(ctx, http.MethodGet, "/active-conf", "/active-conf", nil)
	if err != nil {
		return nil, err
	}

	var conf activeConfiguration
	if err := json.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("failed to decode active configuration: %w", err)
	}

	var correspondents []Correspondent
	for _, cd := range conf.Countries {
		if country != "" && cd.Country != country {
			continue
		}
		for _, op := range cd.Correspondents {
			correspondents = append(correspondents, Correspondent{
				Correspondent: op.Correspondent,
				Country:       cd.Country,
				Currency:      op.Currency,
			})
		}
	}

	c.logger.DebugContext(ctx, "listed correspondents",
		"country", country,
		"count", len(correspondents),
	)

	return correspondents, nil
}

// PredictCorrespondent asks the provider which mobile-money operator serves
// the given phone number. Prediction is a convenience, not a requirement: on
// any failure, the prediction endpoint being unreachable included, it
// returns an empty code and a nil error. Only the transaction calls decide
// whether an unresolved correspondent is fatal.
func (c *Client) PredictCorrespondent(ctx context.Context, msisdn string) (string, error) {
	body, err := json.Marshal(map[string]string{"msisdn": msisdn})
	if err != nil {
		return "", fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/predict-correspondent", "/v1/predict-correspondent", body)
	if err != nil {
		c.logger.DebugContext(ctx, "correspondent prediction failed, treating as unresolved",
			"error", err,
		)
		return "", nil
	}

	var resp struct {
		Correspondent string `json:"correspondent"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.DebugContext(ctx, "correspondent prediction returned malformed body, treating as unresolved",
			"error", err,
		)
		return "", nil
	}

	return resp.Correspondent, nil
}

// resolveCorrespondent applies the resolution order for transaction calls:
// an explicitly supplied correspondent is used verbatim, otherwise the
// prediction endpoint is consulted. Absence of any usable correspondent is a
// hard error here, unlike prediction's internal soft-fail.
func (c *Client) resolveCorrespondent(ctx context.Context, supplied, msisdn string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}

	predicted, err := c.PredictCorrespondent(ctx, msisdn)
	if err != nil {
		return "", err
	}
	if predicted == "" {
		return "", &CorrespondentResolutionError{MSISDN: msisdn}
	}

	c.logger.DebugContext(ctx, "predicted correspondent",
		"msisdn", msisdn,
		"correspondent", predicted,
	)

	return predicted, nil
}

package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/solopage/solopage-backend/internal/domain/consts"
)

// Client wraps the edge provider's domain API. It registers domains on the
// shared project, polls verification state and scans the provider's global
// domain list to detect cross-project assignments.
type Client struct {
	cfg    *VercelConfig
	client *http.Client
}

func NewClient(cfg *VercelConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type RegisterOutcome int

const (
	RegisterOK RegisterOutcome = iota
	RegisterAlreadyAssigned
	RegisterInvalidDomain
	RegisterUnreachable
)

type RegisterDomainResult struct {
	Outcome  RegisterOutcome
	DomainID string
	Detail   string
}

type VerificationResult struct {
	Found bool
	State consts.DomainStatus
	Raw   json.RawMessage
}

type DomainOwnership struct {
	// Known is false when the provider scan failed part-way; callers must
	// treat that as "unknown", not "not found".
	Known              bool
	Exists             bool
	OwnedByThisProject bool
	ProjectID          string
	ProviderDomainID   string
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RegisterDomain attaches domain to the configured project. The outcome is a
// closed set; transport failures surface as RegisterUnreachable rather than
// an error so every caller handles the full set.
func (c *Client) RegisterDomain(ctx context.Context, domain string) RegisterDomainResult {
	payload := map[string]string{"name": domain}
	if c.cfg.TeamID != "" {
		payload["teamId"] = c.cfg.TeamID
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return RegisterDomainResult{Outcome: RegisterUnreachable, Detail: err.Error()}
	}

	url := fmt.Sprintf("%s/v1/projects/%s/domains", c.cfg.BaseURL, c.cfg.ProjectID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return RegisterDomainResult{Outcome: RegisterUnreachable, Detail: err.Error()}
	}
	request.Header.Set("Content-Type", "application/json")
	c.authorize(request)

	resp, err := c.client.Do(request)
	if err != nil {
		slog.Error("provider unreachable", "domain", domain, "err", err)
		return RegisterDomainResult{Outcome: RegisterUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var result struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return RegisterDomainResult{Outcome: RegisterUnreachable, Detail: err.Error()}
		}
		return RegisterDomainResult{Outcome: RegisterOK, DomainID: result.ID}
	}

	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	detail := apiErr.Error.Message
	switch {
	case resp.StatusCode == http.StatusConflict,
		strings.Contains(apiErr.Error.Code, "already_in_use"),
		strings.Contains(apiErr.Error.Code, "domain_taken"):
		return RegisterDomainResult{Outcome: RegisterAlreadyAssigned, Detail: detail}
	case resp.StatusCode == http.StatusBadRequest:
		return RegisterDomainResult{Outcome: RegisterInvalidDomain, Detail: detail}
	default:
		return RegisterDomainResult{Outcome: RegisterUnreachable, Detail: detail}
	}
}

// GetVerificationState polls the provider for a domain's verification state.
// Found is false when the domain is not attached to this project.
func (c *Client) GetVerificationState(ctx context.Context, domain string) (VerificationResult, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/domains/%s", c.cfg.BaseURL, c.cfg.ProjectID, domain)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VerificationResult{}, err
	}
	c.authorize(request)

	resp, err := c.client.Do(request)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("can't reach provider, %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return VerificationResult{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return VerificationResult{}, fmt.Errorf("provider returned status %v", resp.StatusCode)
	}

	var raw json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return VerificationResult{}, err
	}
	var result struct {
		Verification struct {
			State string `json:"state"`
		} `json:"verification"`
		Verified bool `json:"verified"`
	}
	if err = json.Unmarshal(raw, &result); err != nil {
		return VerificationResult{}, err
	}

	return VerificationResult{
		Found: true,
		State: mapVerificationState(result.Verification.State, result.Verified),
		Raw:   raw,
	}, nil
}

// FindDomainOwnership scans the provider's global domain list to tell
// whether an ambiguously-failing domain is held by another project. The list
// is paginated; any failed page makes the result unknown.
func (c *Client) FindDomainOwnership(ctx context.Context, domain string) (DomainOwnership, error) {
	const maxPages = 20
	url := fmt.Sprintf("%s/v1/domains", c.cfg.BaseURL)
	for page := 0; page < maxPages; page++ {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return DomainOwnership{}, err
		}
		c.authorize(request)

		resp, err := c.client.Do(request)
		if err != nil {
			return DomainOwnership{}, fmt.Errorf("can't list provider domains, %v", err)
		}

		var result struct {
			Domains []struct {
				ID        string `json:"id"`
				Name      string `json:"name"`
				ProjectID string `json:"projectId"`
			} `json:"domains"`
			Pagination struct {
				Next int64 `json:"next"`
			} `json:"pagination"`
		}
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			return DomainOwnership{}, fmt.Errorf("provider domain list failed, status %v, %v", resp.StatusCode, err)
		}

		for _, d := range result.Domains {
			if strings.EqualFold(d.Name, domain) {
				return DomainOwnership{
					Known:              true,
					Exists:             true,
					OwnedByThisProject: d.ProjectID == c.cfg.ProjectID,
					ProjectID:          d.ProjectID,
					ProviderDomainID:   d.ID,
				}, nil
			}
		}
		if result.Pagination.Next == 0 {
			return DomainOwnership{Known: true, Exists: false}, nil
		}
		url = fmt.Sprintf("%s/v1/domains?until=%d", c.cfg.BaseURL, result.Pagination.Next)
	}

	// hitting the page cap with more pages pending is a truncated scan,
	// which must read as unknown rather than not found
	return DomainOwnership{}, fmt.Errorf("provider domain list truncated after %d pages", maxPages)
}

func (c *Client) authorize(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if c.cfg.TeamID != "" {
		request.Header.Set("x-team-id", c.cfg.TeamID)
	}
}

func mapVerificationState(state string, verified bool) consts.DomainStatus {
	switch strings.ToLower(state) {
	case "valid":
		return consts.DomainStatusValid
	case "invalid":
		return consts.DomainStatusInvalid
	case "pending":
		return consts.DomainStatusPending
	}
	if verified {
		return consts.DomainStatusValid
	}
	// unknown states stay pending rather than failing the poll
	return consts.DomainStatusPending
}

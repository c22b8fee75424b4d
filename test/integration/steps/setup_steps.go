package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// registerSetupSteps registers steps that seed scenario state through
// the public API, so every fixture passes the same validation as real
// traffic.
func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am registered as "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I have a category named "([^"]*)"$`, iHaveACategoryNamed)
	ctx.Step(`^I have a transaction "([^"]*)" described "([^"]*)"$`, iHaveATransactionDescribed)
	ctx.Step(`^I have a rule matching "([^"]*)" with mode "([^"]*)" for category "([^"]*)"$`, iHaveARuleFor)
}

func (tc *TestContext) postJSON(endpoint string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := tc.doRequest("POST", endpoint, bytes.NewBuffer(body)); err != nil {
		return nil, err
	}
	if tc.response.StatusCode < 200 || tc.response.StatusCode > 299 {
		return nil, fmt.Errorf("setup request to %s failed with status %d: %s", endpoint, tc.response.StatusCode, string(tc.responseBody))
	}

	var parsed map[string]any
	if err := json.Unmarshal(tc.responseBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse setup response: %w", err)
	}
	return parsed, nil
}

func iAmRegisteredAs(ctx context.Context, email string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	parsed, err := tc.postJSON("/api/v1/auth/register", map[string]any{
		"email":    email,
		"name":     "Test User",
		"password": "sup3r-secret",
	})
	if err != nil {
		return ctx, err
	}

	token, ok := parsed["access_token"].(string)
	if !ok || token == "" {
		return ctx, fmt.Errorf("register response missing access_token: %s", string(tc.responseBody))
	}
	tc.accessToken = token

	return SetTestContext(ctx, tc), nil
}

func iHaveACategoryNamed(ctx context.Context, name string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	parsed, err := tc.postJSON("/api/v1/categories", map[string]any{"name": name})
	if err != nil {
		return ctx, err
	}

	id, ok := parsed["id"].(string)
	if !ok || id == "" {
		return ctx, fmt.Errorf("category response missing id: %s", string(tc.responseBody))
	}
	tc.categoryIDs[name] = id

	return SetTestContext(ctx, tc), nil
}

func iHaveATransactionDescribed(ctx context.Context, name, description string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	parsed, err := tc.postJSON("/api/v1/transactions", map[string]any{
		"date":        "2024-03-15",
		"description": description,
		"amount":      "-12.50",
	})
	if err != nil {
		return ctx, err
	}

	id, ok := parsed["id"].(string)
	if !ok || id == "" {
		return ctx, fmt.Errorf("transaction response missing id: %s", string(tc.responseBody))
	}
	tc.transactionIDs[name] = id

	return SetTestContext(ctx, tc), nil
}

func iHaveARuleFor(ctx context.Context, pattern, mode, categoryName string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	categoryID, ok := tc.categoryIDs[categoryName]
	if !ok {
		return ctx, fmt.Errorf("unknown category %q, create it first", categoryName)
	}

	if _, err := tc.postJSON("/api/v1/categorization/rules", map[string]any{
		"pattern":     pattern,
		"match_mode":  mode,
		"category_id": categoryID,
	}); err != nil {
		return ctx, err
	}

	return SetTestContext(ctx, tc), nil
}

package testutil

import (
	"testing"
	"time"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
)

// Fixtures provides common test data shaped like OmniDimension responses.

// NewClient returns an SDK client pointed at the mock server.
func (ms *MockServer) NewClient(t *testing.T) *sdk.Client {
	t.Helper()
	client, err := sdk.New(sdk.Config{
		APIKey:  TestAPIKey,
		BaseURL: ms.URL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// Success wraps data in the standard success envelope.
func Success(data any) map[string]any {
	return map[string]any{"status": "success", "data": data}
}

// Failure returns the standard error envelope.
func Failure(message string) map[string]any {
	return map[string]any{"status": "error", "error": message}
}

// FixtureAgent returns a sample agent.
func FixtureAgent() map[string]any {
	return map[string]any{
		"id":              float64(101),
		"name":            "Front Desk",
		"welcome_message": "Hello, thanks for calling.",
		"context_breakdown": []any{
			map[string]any{"title": "Purpose", "body": "Book appointments.", "is_enabled": true},
		},
	}
}

// FixtureAgents returns a page of agents as the list endpoint does.
func FixtureAgents() map[string]any {
	second := map[string]any{"id": float64(102), "name": "After Hours"}
	return map[string]any{
		"bots":          []any{FixtureAgent(), second},
		"total_records": float64(2),
	}
}

// FixtureCallLog returns a sample call log.
func FixtureCallLog() map[string]any {
	return map[string]any{
		"id":                float64(9001),
		"bot_id":            float64(101),
		"to_number":         "+15551234567",
		"call_status":       "completed",
		"call_duration":     float64(74),
		"recording_url":     "https://example.com/recording.mp3",
		"call_conversation": "Agent: Hello\nCaller: Hi",
	}
}

// FixtureCallLogs returns a page of call logs.
func FixtureCallLogs() map[string]any {
	return map[string]any{
		"call_log_data": []any{FixtureCallLog()},
		"total_records": float64(1),
	}
}

// FixturePhoneNumbers returns a list of imported phone numbers.
func FixturePhoneNumbers() []any {
	return []any{
		map[string]any{"id": float64(7), "phone_number": "+15550000001", "agent_id": nil},
		map[string]any{"id": float64(8), "phone_number": "+15550000002", "agent_id": float64(101)},
	}
}

// FixtureKnowledgeBaseFiles returns a list of knowledge base files.
func FixtureKnowledgeBaseFiles() []any {
	return []any{
		map[string]any{"id": float64(55), "name": "faq.pdf", "size": float64(20480)},
	}
}

// FixtureIntegrations returns a list of integrations.
func FixtureIntegrations() []any {
	return []any{
		map[string]any{"id": float64(31), "name": "CRM lookup", "integration_type": "custom_api"},
		map[string]any{"id": float64(32), "name": "Calendar", "integration_type": "cal"},
	}
}

// FixtureSimulation returns a sample simulation.
func FixtureSimulation() map[string]any {
	return map[string]any{
		"id":                           float64(12),
		"name":                         "Booking regression",
		"agent_id":                     float64(101),
		"number_of_call_to_make":       float64(1),
		"concurrent_call_count":        float64(3),
		"max_call_duration_in_minutes": float64(3),
		"status":                       "draft",
	}
}

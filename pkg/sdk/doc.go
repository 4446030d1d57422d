// Package sdk provides a Go HTTP client for the matchd therapist matching
// service.
//
// The client drives one conversational matching turn per call: it sends the
// conversation history plus the caller-held filter state and receives ranked
// therapists plus the updated filters to hold for the next turn.
//
//	client := sdk.New("https://matchd.example.com", sdk.WithAPIKey("secret"))
//
//	filters := sdk.Filters{}
//	resp, err := client.Match(ctx, &sdk.MatchRequest{
//	    ChatID: "chat-42",
//	    Messages: []sdk.Message{
//	        {Role: "user", Content: "I'd like a female therapist under $150"},
//	    },
//	    CurrentFilters: filters,
//	})
//	if err == nil {
//	    filters = resp.Filters // resubmit next turn
//	}
package sdk

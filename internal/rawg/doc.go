// Package rawg provides an HTTP client for the RAWG video game database API.
//
// # Overview
//
// GameTrackr consumes two read-only endpoints:
//
//   - GET /games           one page of summaries (search or trending listing)
//   - GET /games/{id}      the full record for one game
//
// Every request carries the API key as the "key" query parameter. A Client
// built without a key reports Configured() == false and refuses to issue
// requests; callers treat that as "fetching disabled", not as a failure.
//
// # Listing modes
//
// ListQuery.Values encodes the two listing modes:
//
//	search=zelda&page_size=12          keyword search
//	ordering=-relevance&page_size=12   trending/default listing (empty search)
//
// # Errors
//
// Failures are reported as *Error with a Kind:
//
//   - KindNetwork: the request could not complete (DNS, refused, timeout, cancel)
//   - KindResponse: non-2xx status code
//   - KindParse: the body was not valid JSON for the expected shape
//
// Describe turns any of these into a short status-line message.
//
// # Rate limiting
//
// Requests pass through a token bucket (5 req/s, burst 5 by default) so fast
// typing combined with detail browsing stays inside the service's limits.
// WithRateLimit(0, 0) disables it.
//
// # Usage Example
//
//	client, err := rawg.NewClient("", os.Getenv("RAWG_API_KEY"))
//	if err != nil {
//		return err
//	}
//	games, err := client.ListGames(ctx, rawg.ListQuery{Search: "zelda"})
//	detail, err := client.GameDetail(ctx, games[0].ID)
//	fmt.Println(detail.PlainDescription())
package rawg

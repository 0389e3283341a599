package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/provider"
	"github.com/quorumlab/consensuskit/usage"
)

// fakeTransport scripts per-model outcomes and counts calls.
type fakeTransport struct {
	name    string
	outcome func(req provider.Request) (*provider.Response, error)
	calls   []string
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Complete(_ context.Context, req provider.Request) (*provider.Response, error) {
	f.calls = append(f.calls, req.Model)
	return f.outcome(req)
}

func okResponse(content string) *provider.Response {
	return &provider.Response{
		Content: content,
		Usage:   provider.TokenUsage{InputTokens: 100, OutputTokens: 40, TotalTokens: 140},
	}
}

func alwaysOK(content string) func(provider.Request) (*provider.Response, error) {
	return func(provider.Request) (*provider.Response, error) {
		return okResponse(content), nil
	}
}

func alwaysErr(err error) func(provider.Request) (*provider.Response, error) {
	return func(provider.Request) (*provider.Response, error) {
		return nil, err
	}
}

func newTestClient(t *testing.T, transports []provider.Transport, opts ...Option) *Client {
	t.Helper()
	return New(usage.NewSession(), transports, opts...)
}

func TestInvokePrimarySuccess(t *testing.T) {
	router := &fakeTransport{name: "router", outcome: func(req provider.Request) (*provider.Response, error) {
		resp := okResponse("answer")
		resp.CostUSD = 0.001
		return resp, nil
	}}
	direct := &fakeTransport{name: "direct", outcome: alwaysOK("never reached")}

	c := newTestClient(t, []provider.Transport{router, direct})
	resp, err := c.Invoke(context.Background(), nil, "gpt-4.1")
	require.NoError(t, err)

	assert.Equal(t, "answer", resp.Content)
	assert.Equal(t, 0.001, resp.CostUSD, "native cost preferred over fixed rates")
	assert.Empty(t, direct.calls, "secondary transport must not run on primary success")

	details := c.Session().Details()
	require.Len(t, details, 1)
	assert.Equal(t, model.Name("gpt-4.1"), details[0].Model)
	assert.Equal(t, 140, details[0].TotalTokens)
}

func TestInvokeFallsBackToDirect(t *testing.T) {
	router := &fakeTransport{name: "router", outcome: alwaysErr(errors.New("connection refused"))}
	direct := &fakeTransport{name: "direct", outcome: alwaysOK("saved by direct")}

	c := newTestClient(t, []provider.Transport{router, direct},
		WithRates(model.Rates{InputPerMillion: 10, OutputPerMillion: 20}))

	resp, err := c.Invoke(context.Background(), nil, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "saved by direct", resp.Content)

	// No native cost on this path: 100/1e6*10 + 40/1e6*20.
	assert.InDelta(t, 0.0018, resp.CostUSD, 1e-12)
	assert.InDelta(t, 0.0018, c.Session().Totals().Cost, 1e-12)
}

func TestInvokeEmptyContentTriggersFallback(t *testing.T) {
	router := &fakeTransport{name: "router", outcome: alwaysOK("  \n\t ")}
	direct := &fakeTransport{name: "direct", outcome: alwaysOK("real content")}

	c := newTestClient(t, []provider.Transport{router, direct})
	resp, err := c.Invoke(context.Background(), nil, "gpt-4.1")
	require.NoError(t, err)
	assert.Equal(t, "real content", resp.Content)

	// The whitespace-only response must not be recorded.
	assert.Equal(t, 1, c.Session().Calls())
}

func TestInvokeBothTransportsFail(t *testing.T) {
	router := &fakeTransport{name: "router", outcome: alwaysErr(errors.New("router down"))}
	direct := &fakeTransport{name: "direct", outcome: alwaysOK("")}

	c := newTestClient(t, []provider.Transport{router, direct})
	_, err := c.Invoke(context.Background(), nil, "gpt-4.1")
	require.Error(t, err)

	var combined *TransportsError
	require.ErrorAs(t, err, &combined)
	assert.Len(t, combined.Errs, 2)
	assert.Contains(t, combined.Error(), "router down")
	assert.Contains(t, combined.Error(), "empty response")

	// Empty response from the second transport keeps the failure recoverable.
	assert.True(t, provider.Recoverable(err))
	assert.Zero(t, c.Session().Calls(), "failed attempts never touch the ledger")
}

func TestInvokeBothFatalCausesIsNotRecoverable(t *testing.T) {
	authErr := provider.NewError("router", "complete", errors.New("invalid_api_key"), false)
	quotaErr := provider.NewError("direct", "complete", errors.New("insufficient_quota"), false)
	router := &fakeTransport{name: "router", outcome: alwaysErr(authErr)}
	direct := &fakeTransport{name: "direct", outcome: alwaysErr(quotaErr)}

	c := newTestClient(t, []provider.Transport{router, direct})
	_, err := c.Invoke(context.Background(), nil, "gpt-4.1")
	require.Error(t, err)
	assert.False(t, provider.Recoverable(err))
}

// Two identical successful invocations produce two independent ledger
// entries whose sum equals the running totals.
func TestInvokeIdempotentRecording(t *testing.T) {
	router := &fakeTransport{name: "router", outcome: alwaysOK("hi")}
	c := newTestClient(t, []provider.Transport{router})

	for i := 0; i < 2; i++ {
		_, err := c.Invoke(context.Background(), nil, "gpt-4.1")
		require.NoError(t, err)
	}

	details := c.Session().Details()
	require.Len(t, details, 2)
	totals := c.Session().Totals()
	assert.Equal(t, details[0].TokensIn+details[1].TokensIn, totals.TokensIn)
	assert.Equal(t, details[0].TokensOut+details[1].TokensOut, totals.TokensOut)
	assert.Equal(t, details[0].Cost+details[1].Cost, totals.Cost)
}

func TestQueryFallsBackAcrossModels(t *testing.T) {
	notFound := provider.NewError("router", "complete", errors.New("model_not_found"), true)
	router := &fakeTransport{name: "router", outcome: func(req provider.Request) (*provider.Response, error) {
		if req.Model == "m3" {
			return okResponse("from m3"), nil
		}
		return nil, notFound
	}}

	chains := model.ChainSet{{Base: "m1", Substitutes: []model.Name{"m2", "m3"}}}
	c := newTestClient(t, []provider.Transport{router}, WithChains(chains))

	resp, err := c.Query(context.Background(), nil, "m1")
	require.NoError(t, err)
	assert.Equal(t, "from m3", resp.Content)
	assert.Equal(t, []string{"m1", "m2", "m3"}, router.calls)
	assert.Equal(t, 1, c.Session().Calls())
}

func TestQueryFatalStopsChain(t *testing.T) {
	notFound := provider.NewError("router", "complete", errors.New("model_not_found"), true)
	authErr := provider.NewError("router", "complete", errors.New("invalid_api_key"), false)
	router := &fakeTransport{name: "router", outcome: func(req provider.Request) (*provider.Response, error) {
		switch req.Model {
		case "m1":
			return nil, notFound
		case "m2":
			return nil, authErr
		}
		t.Errorf("candidate %q must never be attempted after a fatal failure", req.Model)
		return nil, nil
	}}

	chains := model.ChainSet{{Base: "m1", Substitutes: []model.Name{"m2", "m3"}}}
	c := newTestClient(t, []provider.Transport{router}, WithChains(chains))

	_, err := c.Query(context.Background(), nil, "m1")
	require.Error(t, err)

	var provErr *provider.Error
	require.ErrorAs(t, err, &provErr)
	assert.ErrorIs(t, err, authErr.Err)
	assert.Equal(t, []string{"m1", "m2"}, router.calls, "m3 must never be attempted")
}

func TestQueryExhausted(t *testing.T) {
	notFound := provider.NewError("router", "complete", errors.New("model_not_found"), true)
	router := &fakeTransport{name: "router", outcome: alwaysErr(notFound)}

	chains := model.ChainSet{{Base: "m1", Substitutes: []model.Name{"m2"}}}
	c := newTestClient(t, []provider.Transport{router}, WithChains(chains))

	_, err := c.Query(context.Background(), nil, "m1")
	require.Error(t, err)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, model.Name("m1"), exhausted.Model)
	assert.Equal(t, []model.Name{"m1", "m2"}, exhausted.Attempted)
	assert.ErrorIs(t, err, notFound.Err)
	assert.Contains(t, err.Error(), "m1, m2")
}

func TestQueryUnknownModelSingleAttempt(t *testing.T) {
	notFound := provider.NewError("router", "complete", errors.New("does not exist"), true)
	router := &fakeTransport{name: "router", outcome: alwaysErr(notFound)}

	c := newTestClient(t, []provider.Transport{router}, WithChains(model.ChainSet{}))
	_, err := c.Query(context.Background(), nil, "mystery-model")
	require.Error(t, err)
	assert.Equal(t, []string{"mystery-model"}, router.calls)
}

func TestQuerySkipsDuplicateCandidates(t *testing.T) {
	notFound := provider.NewError("router", "complete", errors.New("model_not_found"), true)
	router := &fakeTransport{name: "router", outcome: alwaysErr(notFound)}

	// A chain that accidentally repeats an entry is attempted once per model.
	chains := model.ChainSet{{Base: "m1", Substitutes: []model.Name{"m1", "m2", "m2"}}}
	c := newTestClient(t, []provider.Transport{router}, WithChains(chains))

	_, err := c.Query(context.Background(), nil, "m1")
	require.Error(t, err)
	assert.Equal(t, []string{"m1", "m2"}, router.calls)
}

func TestQueryMaxTokensPropagated(t *testing.T) {
	var seen int
	router := &fakeTransport{name: "router", outcome: func(req provider.Request) (*provider.Response, error) {
		seen = req.MaxTokens
		return okResponse("ok"), nil
	}}

	c := newTestClient(t, []provider.Transport{router}, WithMaxTokens(321))
	_, err := c.Query(context.Background(), nil, "gpt-4.1")
	require.NoError(t, err)
	assert.Equal(t, 321, seen)
}

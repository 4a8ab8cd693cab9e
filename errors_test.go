package wargamer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    errors.ErrorCode
	}{
		{message: "INVALID_ACCESS_TOKEN", want: errors.CodeUnauthorized},
		{message: "APPLICATION_IS_BLOCKED", want: errors.CodeForbidden},
		{message: "INVALID_IP_ADDRESS", want: errors.CodeForbidden},
		{message: "ACCOUNT_ID_LIST_LIMIT_EXCEEDED", want: errors.CodeInvalidInput},
		{message: "REQUEST_LIMIT_EXCEEDED", want: errors.CodeRateLimit},
		{message: "ACCOUNT_NOT_FOUND", want: errors.CodeNotFound},
		{message: "METHOD_NOT_FOUND", want: errors.CodeNotFound},
		{message: "SOURCE_NOT_AVAILABLE", want: errors.CodeUnavailable},
		{message: "METHOD_DISABLED", want: errors.CodeUnavailable},
		{message: "INVALID_SEARCH", want: errors.CodeInvalidInput},
		{message: "search_not_specified", want: errors.CodeInvalidInput},
		{message: "SOMETHING_ELSE", want: errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, remoteErrorCode(tt.message))
		})
	}
}

func TestHTTPStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   errors.ErrorCode
	}{
		{status: 400, want: errors.CodeInvalidInput},
		{status: 401, want: errors.CodeUnauthorized},
		{status: 403, want: errors.CodeForbidden},
		{status: 404, want: errors.CodeNotFound},
		{status: 422, want: errors.CodeInvalidInput},
		{status: 429, want: errors.CodeRateLimit},
		{status: 500, want: errors.CodeNetwork},
		{status: 502, want: errors.CodeNetwork},
		{status: 503, want: errors.CodeUnavailable},
		{status: 504, want: errors.CodeTimeout},
		{status: 302, want: errors.CodeInternal},
		{status: 200, want: errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, httpStatusCode(tt.status))
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()

	err := &TransportError{Method: "account/list", Realm: RealmEU, Product: ProductWorldOfTanks, StatusCode: 502}
	assert.Equal(t, "request to wot/eu/account/list failed with status 502", err.Error())

	cause := fmt.Errorf("connection reset")
	err = &TransportError{Method: "account/list", Realm: RealmEU, Product: ProductWorldOfTanks, Err: cause}
	assert.Equal(t, "request to wot/eu/account/list failed: connection reset", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrapTransportError_Timeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := wrapTransportError(ctx, &TransportError{Err: ctx.Err()})
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(err))

	err = wrapTransportError(context.Background(), &TransportError{Err: fmt.Errorf("refused")})
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
}

func TestWrapTransportError_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wrapTransportError(ctx, &TransportError{Method: "account/list", Err: ctx.Err()})
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
	assert.Equal(t, errors.GetCode(contextError(ctx)), errors.GetCode(err))
	assert.True(t, errors.Is(err, context.Canceled))

	// A status from the server still wins over a cancellation.
	err = wrapTransportError(ctx, &TransportError{StatusCode: 503, Err: ctx.Err()})
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestContextError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := contextError(ctx)
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	req := request{method: "account/list", realm: RealmEU, product: ProductWorldOfTanks}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		resp, err := parseResponse(&RawResponse{
			StatusCode: 200,
			Body:       []byte(`{"status":"ok","meta":{"count":2},"data":{"1":{"id":1},"2":null}}`),
		}, req)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, json.Number("2"), resp.Meta["count"])

		records, err := resp.Records()
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Nil(t, records["2"])
		assert.Equal(t, json.Number("1"), records["1"]["id"])
	})

	t.Run("remote error wins over status", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse(&RawResponse{
			StatusCode: 400,
			Body:       []byte(`{"status":"error","error":{"code":402,"message":"SEARCH_NOT_SPECIFIED","field":"search","value":null}}`),
		}, req)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "402: SEARCH_NOT_SPECIFIED. Error field: search => <nil>.", apiErr.Error())
	})

	t.Run("bad status", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse(&RawResponse{StatusCode: 502, Body: []byte("bad gateway")}, req)
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, 502, tErr.StatusCode)
		assert.NoError(t, tErr.Err)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse(&RawResponse{StatusCode: 200, Body: []byte("{")}, req)
		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Error(t, tErr.Err)
	})
}

func TestRecordID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{name: "json number", value: json.Number("2849"), want: 2849},
		{name: "float", value: float64(17), want: 17},
		{name: "int", value: 3, want: 3},
		{name: "string", value: "51201", want: 51201},
		{name: "bad string", value: "abc", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := recordID(Record{"tank_id": tt.value}, "tank_id")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

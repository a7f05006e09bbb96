package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

type pingRequest struct {
	Fail bool `json:"fail"`
}

type pingResponse struct {
	Pong string `json:"pong"`
}

const pingProcedure = "/test.v1.PingService/Ping"

type recorder struct {
	mu    sync.Mutex
	codes []string
}

func (r *recorder) ObserveRPC(procedure, code string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, procedure+" "+code)
}

func TestInterceptors(t *testing.T) {
	rec := &recorder{}
	interceptors := connect.WithInterceptors(MetricsInterceptor(rec), LoggingInterceptor())

	handler := connect.NewUnaryHandler(pingProcedure,
		func(ctx context.Context, req *connect.Request[pingRequest]) (*connect.Response[pingResponse], error) {
			if req.Msg.Fail {
				return nil, connect.NewError(connect.CodeNotFound, errors.New("nothing here"))
			}
			return connect.NewResponse(&pingResponse{Pong: "pong"}), nil
		},
		connect.WithCodec(ledgerv1.JSONCodec{}), interceptors,
	)

	mux := http.NewServeMux()
	mux.Handle(pingProcedure, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := connect.NewClient[pingRequest, pingResponse](http.DefaultClient, server.URL+pingProcedure,
		connect.WithCodec(ledgerv1.JSONCodec{}))

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&pingRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Msg.Pong)

	_, err = client.CallUnary(context.Background(), connect.NewRequest(&pingRequest{Fail: true}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	assert.Equal(t, []string{
		pingProcedure + " ok",
		pingProcedure + " not_found",
	}, rec.codes)
}

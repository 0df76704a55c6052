package sentry

import (
	"net/http"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// FlushTime é o tempo máximo de espera pelo envio dos eventos pendentes no desligamento.
const FlushTime = 2 * time.Second

// Init configura o cliente global. Com DSN vazio o cliente é criado sem
// transporte e nenhum evento sai do processo.
func Init(dsn, environment string) error {
	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	})
}

// Flush aguarda o envio dos eventos pendentes.
func Flush() {
	sentrygo.Flush(FlushTime)
}

// Middleware anexa um hub por requisição e reporta panics (repassando-os).
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// CaptureError reporta um erro de servidor ligado à requisição.
func CaptureError(r *http.Request, err error) {
	hub := sentrygo.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentrygo.CurrentHub()
	}
	hub.WithScope(func(scope *sentrygo.Scope) {
		scope.SetRequest(r)
		scope.SetTag("route", r.URL.Path)
		hub.CaptureException(err)
	})
}

// Package httpscope gives every HTTP request its own child injector.
//
// The child sees everything its parent has already built, and it keeps its
// own singletons for the request's lifetime:
//
//	r := chi.NewRouter()
//	r.Use(httpscope.Middleware(root))
//	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
//	    inj, _ := httpscope.FromRequest(req)
//	    params, _ := strata.GetID(inj, httpscope.RouteParamsToken)
//	    _ = params["id"]
//	})
package httpscope

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xraph/strata"
	"go.uber.org/zap"
)

var (
	// RequestToken resolves to the current *http.Request.
	RequestToken = strata.NewID[*http.Request]("httpscope.Request")

	// ResponseWriterToken resolves to the current http.ResponseWriter.
	ResponseWriterToken = strata.NewID[http.ResponseWriter]("httpscope.ResponseWriter")

	// RouteParamsToken resolves to the chi URL parameters of the matched route.
	RouteParamsToken = strata.NewID[map[string]string]("httpscope.RouteParams")
)

// Option configures Middleware.
type Option func(*options)

type options struct {
	providers func(r *http.Request) []strata.Provider
	injector  []strata.Option
	logger    *zap.Logger
}

// WithRequestProviders adds providers computed from each request.
func WithRequestProviders(fn func(r *http.Request) []strata.Provider) Option {
	return func(o *options) {
		o.providers = fn
	}
}

// WithInjectorOptions passes extra options to every per-request injector.
func WithInjectorOptions(opts ...strata.Option) Option {
	return func(o *options) {
		o.injector = append(o.injector, opts...)
	}
}

// WithLogger sets the logger used for request injector failures.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Middleware creates a child of parent for each request, stores it in the
// request context and closes it when the handler returns. A request whose
// injector cannot be built gets a 500 response.
func Middleware(parent strata.Injector, opts ...Option) func(http.Handler) http.Handler {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providers := []strata.Provider{
				strata.UseValue(RequestToken, r),
				strata.UseValue(ResponseWriterToken, w),
				strata.UseFactory(RouteParamsToken, func(...any) (any, error) {
					return routeParams(r), nil
				}),
			}

			if o.providers != nil {
				providers = append(providers, o.providers(r)...)
			}

			injOpts := append([]strata.Option{
				strata.WithParent(parent),
				strata.WithProviders(providers...),
			}, o.injector...)

			child, err := strata.New(injOpts...)
			if err != nil {
				o.logger.Error("request injector failed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

				return
			}

			defer func() {
				if err := child.Close(); err != nil {
					o.logger.Warn("request injector close failed",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
				}
			}()

			next.ServeHTTP(w, r.WithContext(strata.WithInjector(r.Context(), child)))
		})
	}
}

// FromRequest returns the request's injector.
func FromRequest(r *http.Request) (strata.Injector, bool) {
	return strata.FromContext(r.Context())
}

// routeParams reads the URL parameters chi has matched so far. It is called
// lazily, so it sees parameters filled in after the middleware ran.
func routeParams(r *http.Request) map[string]string {
	params := make(map[string]string)

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}

	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	return params
}

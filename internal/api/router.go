package api

import (
	"net/http"
	"time"

	"stepik_backend/internal/api/handler"
	"stepik_backend/internal/api/middleware"
	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common/security"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Services bundles everything the HTTP layer talks to.
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Courses     *service.CourseService
	Enrollments *service.EnrollmentService
	Modules     *service.ModuleService
	Tasks       *service.TaskService
	Submissions *service.SubmissionService
}

func NewRouter(svc Services, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses "Authorization: Bearer T" into the context; Authenticator enforces it on the authed group.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth, log)
		v1.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(svc.Users, log)
		courseHandler := handler.NewCourseHandler(svc.Courses, svc.Enrollments, log)
		moduleHandler := handler.NewModuleHandler(svc.Modules, log)
		taskHandler := handler.NewTaskHandler(svc.Tasks, log)
		submissionHandler := handler.NewSubmissionHandler(svc.Submissions, log)
		enrollmentHandler := handler.NewEnrollmentHandler(svc.Enrollments, log)

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator(svc.Users))

			authed.Route("/users", userHandler.RegisterRoutes)
			authed.Route("/courses", courseHandler.RegisterRoutes)
			authed.Route("/modules", moduleHandler.RegisterRoutes)
			authed.Route("/tasks", taskHandler.RegisterRoutes)
			authed.Route("/input-outputs", taskHandler.RegisterInputOutputRoutes)
			authed.Route("/submissions", submissionHandler.RegisterRoutes)

			authed.Get("/enrollments", enrollmentHandler.ListMine)
			authed.Get("/enrollments/", enrollmentHandler.ListMine)
			authed.Get("/my-courses", enrollmentHandler.MyCourses)
			authed.Get("/my-courses/", enrollmentHandler.MyCourses)
		})
	})

	return otelhttp.NewHandler(r, "stepik-backend")
}

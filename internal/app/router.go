package app

import (
	"edusync_backend/internal/config"
	"edusync_backend/internal/middleware"
	"edusync_backend/internal/model"
	"edusync_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config, rdb *redis.Client) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, rdb))
	{
		authGroup.POST("/auth/logout", c.auth.Logout)
		authGroup.GET("/userprofile/me", c.auth.Me)

		users := authGroup.Group("/users")
		{
			users.GET("/:id", c.user.GetUser)
			users.PUT("/:id", c.user.UpdateUser)
			users.DELETE("/:id", c.user.DeleteUser)
		}

		courses := authGroup.Group("/courses")
		{
			courses.GET("", c.course.ListCourses)
			courses.GET("/:id", c.course.GetCourse)

			educator := courses.Group("")
			educator.Use(middleware.RoleMiddleware(model.Educator))
			{
				educator.GET("/mine", c.course.MyCourses)
				educator.POST("", c.course.CreateCourse)
				educator.PUT("/:id", c.course.UpdateCourse)
				educator.DELETE("/:id", c.course.DeleteCourse)
				educator.POST("/:id/video", c.course.UploadVideo)
				educator.POST("/:id/attachments/:kind", c.course.UploadAttachment)
			}
		}

		assessments := authGroup.Group("/assessments")
		{
			assessments.GET("", c.assessment.ListAssessments)
			assessments.GET("/:id", c.assessment.GetAssessment)
			assessments.GET("/:id/questions", c.assessment.ListQuestions)
			assessments.GET("/:id/questions/:questionId", c.assessment.GetQuestion)

			student := assessments.Group("")
			student.Use(middleware.RoleMiddleware(model.Student))
			{
				student.POST("/submit", c.assessment.SubmitAnswers)
			}

			educator := assessments.Group("")
			educator.Use(middleware.RoleMiddleware(model.Educator))
			{
				educator.POST("", c.assessment.CreateAssessment)
				educator.PUT("/:id", c.assessment.UpdateAssessment)
				educator.DELETE("/:id", c.assessment.DeleteAssessment)
				educator.POST("/:id/questions", c.assessment.AddQuestions)
				educator.PUT("/:id/questions/:questionId", c.assessment.UpdateQuestion)
				educator.DELETE("/:id/questions/:questionId", c.assessment.DeleteQuestion)
				educator.GET("/responses/:id", c.assessment.Responses)
			}
		}

		enrollments := authGroup.Group("/enrollments")
		{
			student := enrollments.Group("")
			student.Use(middleware.RoleMiddleware(model.Student))
			{
				student.POST("/enroll", c.enrollment.Enroll)
				student.DELETE("/withdraw", c.enrollment.Withdraw)
				student.GET("/mine", c.enrollment.EnrolledCourses)
			}

			educator := enrollments.Group("")
			educator.Use(middleware.RoleMiddleware(model.Educator))
			{
				educator.GET("/course/:courseId", c.enrollment.EnrolledStudents)
			}
		}
	}
}

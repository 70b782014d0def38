package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/controllers"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrls.AuthController.Login)
		auth.POST("/refresh", ctrls.AuthController.Refresh)
		auth.POST("/activate", ctrls.AuthController.Activate)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrls.AuthController.Logout)
		authenticated.POST("/auth/accept-terms", ctrls.AuthController.AcceptTerms)

		// School tenants: reads for everyone, writes for SUPER_ADMIN only
		schools := authenticated.Group("/schools")
		{
			schools.GET("", ctrls.SchoolController.GetAllSchools)
			schools.GET("/:id", ctrls.SchoolController.GetSchoolByID)

			schoolsSuperProtected := schools.Group("")
			schoolsSuperProtected.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				schoolsSuperProtected.POST("", ctrls.SchoolController.CreateSchool)
				schoolsSuperProtected.PUT("/:id", ctrls.SchoolController.UpdateSchool)
			}
		}

		// User provisioning is a SUPER_ADMIN concern
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			users.POST("", ctrls.SchoolController.CreateUser)
			users.GET("", ctrls.SchoolController.GetUsers)
		}

		// Registry writes belong to school admins; admissions staff read
		parents := authenticated.Group("/parents")
		{
			parents.GET("", ctrls.ParentController.GetAllParents)
			parents.GET("/:id", ctrls.ParentController.GetParentByID)

			parentsAdminProtected := parents.Group("")
			parentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				parentsAdminProtected.POST("", ctrls.ParentController.CreateParent)
			}
		}

		students := authenticated.Group("/students")
		{
			students.GET("", ctrls.StudentController.GetAllStudents)
			students.GET("/:id", ctrls.StudentController.GetStudentByID)

			studentsAdminProtected := students.Group("")
			studentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				studentsAdminProtected.POST("", ctrls.StudentController.CreateStudent)
				studentsAdminProtected.POST("/import", ctrls.StudentController.ImportStudents)
				studentsAdminProtected.PUT("/:id/school", ctrls.StudentController.TransferStudent)
				studentsAdminProtected.PUT("/:id/parent", ctrls.StudentController.AssignParent)
			}
		}

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("", ctrls.TeacherController.GetAllTeachers)
			teachers.GET("/:id", ctrls.TeacherController.GetTeacherByID)

			teachersAdminProtected := teachers.Group("")
			teachersAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				teachersAdminProtected.POST("", ctrls.TeacherController.CreateTeacher)
				teachersAdminProtected.PUT("/:id", ctrls.TeacherController.UpdateTeacher)
				teachersAdminProtected.POST("/:id/flag", ctrls.TeacherController.FlagTeacher)
				teachersAdminProtected.POST("/:id/clear", ctrls.TeacherController.ClearTeacher)
				teachersAdminProtected.POST("/:id/evidence", ctrls.TeacherController.AddEvidence)
				teachersAdminProtected.DELETE("/:id/evidence/:evidenceId", ctrls.TeacherController.RemoveEvidence)
			}
		}

		flags := authenticated.Group("/flags")
		{
			flags.GET("", ctrls.FlagController.GetAllFlags)
			flags.GET("/audit", ctrls.FlagController.GetAuditLog)
			flags.GET("/totals", ctrls.FlagController.GetTotals)
			flags.GET("/:id", ctrls.FlagController.GetFlagByID)

			flagsAdminProtected := flags.Group("")
			flagsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				flagsAdminProtected.POST("", ctrls.FlagController.CreateFlag)
				flagsAdminProtected.POST("/:id/clear", ctrls.FlagController.ClearFlag)
			}
		}

		consents := authenticated.Group("/consents")
		{
			consents.GET("", ctrls.ConsentController.GetConsents)

			// Admissions staff open requests; admins of the student's school decide
			consents.POST("", ctrls.ConsentController.RequestConsent)

			consentsAdminProtected := consents.Group("")
			consentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				consentsAdminProtected.POST("/:id/approve", ctrls.ConsentController.ApproveConsent)
				consentsAdminProtected.POST("/:id/reject", ctrls.ConsentController.RejectConsent)
			}
		}

		disputes := authenticated.Group("/disputes")
		{
			disputes.GET("", ctrls.DisputeController.GetDisputes)
			disputes.GET("/:id", ctrls.DisputeController.GetDisputeByID)
			disputes.POST("", ctrls.DisputeController.RaiseDispute)

			disputesAdminProtected := disputes.Group("")
			disputesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSchoolAdmin))
			{
				disputesAdminProtected.POST("/:id/review", ctrls.DisputeController.StartReview)
				disputesAdminProtected.POST("/:id/resolve", ctrls.DisputeController.ResolveDispute)
			}
		}

		// Duplicate-review arbitration is a SUPER_ADMIN concern
		reviews := authenticated.Group("/reviews")
		reviews.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			reviews.GET("", ctrls.ReviewController.GetReviews)
			reviews.GET("/:id", ctrls.ReviewController.GetReviewByID)
			reviews.POST("/:id/resolve", ctrls.ReviewController.ResolveReview)
		}

		// Verification lookups for admissions and admins alike
		verify := authenticated.Group("/verify")
		{
			verify.GET("/student", ctrls.VerificationController.VerifyStudent)
			verify.GET("/teacher", ctrls.VerificationController.VerifyTeacher)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}

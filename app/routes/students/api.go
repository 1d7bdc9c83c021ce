package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
)

func CreateStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var student models.Student
		if err := c.BodyParser(&student); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		var fields []models.FieldError
		if student.AdmissionNumber == "" {
			fields = append(fields, models.FieldError{Field: "admission_number", Error: "admission_number is required"})
		}
		if student.FirstName == "" {
			fields = append(fields, models.FieldError{Field: "first_name", Error: "first_name is required"})
		}
		if student.ClassID == "" {
			fields = append(fields, models.FieldError{Field: "class_id", Error: "class_id is required"})
		}
		if student.RegistrationType != "" && !student.RegistrationType.Valid() {
			fields = append(fields, models.FieldError{Field: "registration_type", Error: "registration_type must be new or continuing"})
		}
		if student.HasSchoolBus && student.VillageID == nil {
			fields = append(fields, models.FieldError{Field: "village_id", Error: "village_id is required for bus students"})
		}
		if len(fields) > 0 {
			return respond.Error(c, models.NewValidationError("invalid student", fields...))
		}
		if student.RegistrationType == "" {
			student.RegistrationType = models.RegistrationContinuing
		}

		if err := database.CreateStudent(db, &student); err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, student)
	}
}

// ListStudentsHandler returns the students of the class named by the
// class_id query parameter.
func ListStudentsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Query("class_id")
		if classID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "class_id query parameter is required"})
		}

		studentList, err := database.GetStudentsByClass(db, classID)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, studentList)
	}
}

func GetStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		student, err := database.GetStudentByID(db, c.Params("id"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, student)
	}
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/shopspring/decimal"
)

const studentColumns = `s.id, s.school_id, s.class_id, s.first_name, s.last_name, s.roll_number,
	s.monthly_expected_amount, COALESCE(u.status, 'ACTIVE'), s.created_at, s.updated_at,
	c.id, c.name, c.code`

const studentFrom = `FROM students s
	LEFT JOIN users u ON u.id = s.user_id
	LEFT JOIN classes c ON c.id = s.class_id AND c.deleted_at IS NULL`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	var (
		monthly                       decimal.NullDecimal
		classID, className, classCode sql.NullString
		status                        string
	)

	err := row.Scan(
		&student.ID, &student.SchoolID, &student.ClassID, &student.FirstName, &student.LastName,
		&student.RollNumber, &monthly, &status, &student.CreatedAt, &student.UpdatedAt,
		&classID, &className, &classCode,
	)
	if err != nil {
		return nil, err
	}

	student.UserStatus = models.UserStatus(status)
	if monthly.Valid {
		student.MonthlyExpectedAmount = &monthly.Decimal
	}
	if classID.Valid {
		student.Class = &models.Class{ID: classID.String, Name: className.String, Code: classCode.String}
	}
	return student, nil
}

// GetStudentByID loads a student of a school with its class. Missing and
// soft-deleted students yield models.ErrStudentNotFound, as do ids that are
// not uuids.
func GetStudentByID(ctx context.Context, db *sql.DB, studentID, schoolID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` ` + studentFrom + `
			  WHERE s.id = $1 AND s.school_id = $2 AND s.deleted_at IS NULL`

	student, err := scanStudent(db.QueryRowContext(ctx, query, studentID, schoolID))
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, models.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", studentID, err)
	}
	return student, nil
}

// GetActiveStudents lists students of a school whose user account is ACTIVE,
// optionally restricted to a class.
func GetActiveStudents(ctx context.Context, db *sql.DB, schoolID string, filter models.StudentFilter) ([]*models.Student, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + studentColumns + ` ` + studentFrom + `
			  WHERE s.school_id = $1 AND s.deleted_at IS NULL AND COALESCE(u.status, 'ACTIVE') = 'ACTIVE'`)
	args := []any{schoolID}

	if filter.ClassID != "" {
		args = append(args, filter.ClassID)
		fmt.Fprintf(&sb, " AND s.class_id = $%d", len(args))
	}
	sb.WriteString(" ORDER BY s.first_name, s.last_name, s.id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if isInvalidID(err) {
		return []*models.Student{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list active students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const attendanceColumns = `
	id, employee_id, store_code, date, status,
	check_in, check_out, breaks, total_break_minutes, total_working_minutes,
	verified_by_client, verified_at, marked_by, remarks, version,
	created_at, updated_at
`

type attendanceRepository struct {
	db *database.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		att    attendance.Attendance
		date   time.Time
		status string
		breaks []byte
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.StoreCode, &date, &status,
		&att.CheckIn, &att.CheckOut, &breaks, &att.TotalBreakMinutes, &att.TotalWorkingMinutes,
		&att.VerifiedByClient, &att.VerifiedAt, &att.MarkedBy, &att.Remarks, &att.Version,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Date = attendance.DateOf(date)
	att.Status = attendance.Status(status)
	if len(breaks) > 0 {
		if err := json.Unmarshal(breaks, &att.Breaks); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}
	if att.Breaks == nil {
		att.Breaks = []attendance.Break{}
	}
	return att, nil
}

func encodeBreaks(breaks []attendance.Break) (string, error) {
	if breaks == nil {
		breaks = []attendance.Break{}
	}
	b, err := json.Marshal(breaks)
	if err != nil {
		return "", fmt.Errorf("failed to encode breaks: %w", err)
	}
	return string(b), nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	breaks, err := encodeBreaks(newAttendance.Breaks)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if newAttendance.MarkedBy == "" {
		newAttendance.MarkedBy = attendance.DefaultMarkedBy
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, store_code, date, status,
			check_in, check_out, breaks, total_break_minutes, total_working_minutes,
			verified_by_client, verified_at, marked_by, remarks, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13, $14, 1
		) RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		newAttendance.EmployeeID,
		newAttendance.StoreCode,
		newAttendance.Date.UTC(),
		string(newAttendance.Status),
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		breaks,
		newAttendance.TotalBreakMinutes,
		newAttendance.TotalWorkingMinutes,
		newAttendance.VerifiedByClient,
		newAttendance.VerifiedAt,
		newAttendance.MarkedBy,
		newAttendance.Remarks,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return attendance.Attendance{}, attendance.ErrDuplicateRecord
			}
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return a.getByID(ctx, id, false)
}

func (a *attendanceRepository) getByID(ctx context.Context, id string, forUpdate bool) (attendance.Attendance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date attendance.CalendarDate) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, id string, patch attendance.Patch) (attendance.Attendance, error) {
	var updated attendance.Attendance

	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)

		current, err := a.getByID(txCtx, id, true)
		if err != nil {
			return err
		}
		if patch.ExpectedVersion != nil && current.Version != *patch.ExpectedVersion {
			return attendance.ErrStaleRecord
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		updates := make([]string, 0)
		args := make([]interface{}, 0)
		argIdx := 1

		set := func(column string, value interface{}) {
			updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
			args = append(args, value)
			argIdx++
		}

		if patch.StoreCode != nil {
			set("store_code", *patch.StoreCode)
		}
		if patch.Status != nil {
			set("status", string(*patch.Status))
		}
		if patch.CheckIn != nil {
			set("check_in", *patch.CheckIn)
		}
		if patch.CheckOut != nil {
			set("check_out", *patch.CheckOut)
		}
		if patch.Breaks != nil {
			breaks, err := encodeBreaks(patch.Breaks)
			if err != nil {
				return err
			}
			updates = append(updates, fmt.Sprintf("breaks = $%d::jsonb", argIdx))
			args = append(args, breaks)
			argIdx++
		}
		if patch.TotalBreakMinutes != nil {
			set("total_break_minutes", *patch.TotalBreakMinutes)
		}
		if patch.TotalWorkingMinutes != nil {
			set("total_working_minutes", *patch.TotalWorkingMinutes)
		}
		if patch.VerifiedByClient != nil {
			set("verified_by_client", *patch.VerifiedByClient)
		}
		if patch.VerifiedAt != nil {
			set("verified_at", *patch.VerifiedAt)
		}
		if patch.MarkedBy != nil {
			set("marked_by", *patch.MarkedBy)
		}
		if patch.Remarks != nil {
			set("remarks", *patch.Remarks)
		}

		updates = append(updates, "version = version + 1")
		set("updated_at", time.Now())

		args = append(args, id)
		query := "UPDATE attendances SET " + strings.Join(updates, ", ") +
			fmt.Sprintf(" WHERE id = $%d RETURNING ", argIdx) + attendanceColumns

		updated, err = scanAttendance(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return updated, nil
}

// buildFilter renders the WHERE clause shared by List and Summarize.
func buildFilter(filter attendance.Filter) (string, []interface{}) {
	conditions := []string{"TRUE"}
	args := make([]interface{}, 0)
	argIdx := 1

	if !filter.Scope.All {
		if len(filter.Scope.Codes) == 0 {
			conditions = append(conditions, "FALSE")
		} else {
			codes := make([]string, 0, len(filter.Scope.Codes))
			for _, c := range filter.Scope.Codes {
				codes = append(codes, strings.ToLower(c))
			}
			conditions = append(conditions, fmt.Sprintf("LOWER(store_code) = ANY($%d)", argIdx))
			args = append(args, codes)
			argIdx++
		}
	}

	// Employee ID filter
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}

	// Date range filters
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, filter.DateFrom.UTC())
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, filter.DateTo.UTC())
	}

	return strings.Join(conditions, " AND "), args
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == attendance.SortAsc {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY date %s, created_at %s, id %s
	`, attendanceColumns, where, sortOrder, sortOrder, sortOrder)

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// Summarize implements attendance.AttendanceRepository.
func (a *attendanceRepository) Summarize(ctx context.Context, filter attendance.Filter) (attendance.Summary, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildFilter(filter)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'halfDay'),
			COALESCE(SUM(total_working_minutes), 0),
			COALESCE(SUM(total_break_minutes), 0)
		FROM attendances
		WHERE ` + where

	var s attendance.Summary
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.TotalDays, &s.PresentDays, &s.AbsentDays, &s.HalfDays,
		&s.TotalWorkingMinutes, &s.TotalBreakMinutes,
	)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize attendances: %w", err)
	}

	return s, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

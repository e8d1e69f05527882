package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
)

var parkingColumns = []string{
	"id",
	"legal_representative",
	"nit_dv",
	"phone",
	"email",
	"address",
	"city",
	"neighborhood",
	"has_branches",
	"number_of_branches",
	"company_name",
	"document_type",
	"document_number",
	"id_files",
	"is_status",
	"internal_id",
	"external_id",
}

// ParkingRepository stores parking pre-enrollments.
type ParkingRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

func NewParkingRepository(exec pgExecutor) *ParkingRepository {
	return &ParkingRepository{exec: exec, builder: newBuilder()}
}

// Create inserts the pre-enrollment and returns it with the generated identifier.
func (r *ParkingRepository) Create(ctx context.Context, parking domain.PreEnrolledParking) (*domain.PreEnrolledParking, error) {
	stmt, args, err := r.builder.Insert(parkingTable).
		Columns(parkingColumns[1:]...).
		Values(
			parking.LegalRepresentative,
			parking.NitDV,
			parking.Phone,
			parking.Email,
			parking.Address,
			parking.City,
			parking.Neighborhood,
			parking.HasBranches,
			parking.NumberOfBranches,
			parking.CompanyName,
			parking.DocumentType,
			parking.DocumentNumber,
			nullableInt(parking.IDFiles),
			parking.Status,
			nullableString(parking.InternalID),
			nullableString(parking.ExternalID),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert parking sql: %w", err)
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&parking.ID); err != nil {
		return nil, fmt.Errorf("insert parking: %w", err)
	}

	return &parking, nil
}

// FindByEmail returns (nil, nil) when no pre-enrollment uses the email.
func (r *ParkingRepository) FindByEmail(ctx context.Context, email string) (*domain.PreEnrolledParking, error) {
	stmt, args, err := r.builder.
		Select(parkingColumns...).
		From(parkingTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select parking sql: %w", err)
	}

	var (
		p          domain.PreEnrolledParking
		idFiles    sql.NullInt32
		internalID sql.NullString
		externalID sql.NullString
	)
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&p.ID,
		&p.LegalRepresentative,
		&p.NitDV,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.City,
		&p.Neighborhood,
		&p.HasBranches,
		&p.NumberOfBranches,
		&p.CompanyName,
		&p.DocumentType,
		&p.DocumentNumber,
		&idFiles,
		&p.Status,
		&internalID,
		&externalID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan parking: %w", err)
	}
	if idFiles.Valid {
		v := int(idFiles.Int32)
		p.IDFiles = &v
	}
	p.InternalID = stringPtr(internalID)
	p.ExternalID = stringPtr(externalID)

	return &p, nil
}

var _ port.ParkingRepository = (*ParkingRepository)(nil)

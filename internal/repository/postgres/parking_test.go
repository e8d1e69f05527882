package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/parkit/parkit-auth/internal/core/domain"
)

func TestParkingRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewParkingRepository(mock)

	externalID := "6f1c1a52-5d36-4c39-9d8e-2d8a4f3c1b11"
	parking := domain.PreEnrolledParking{
		LegalRepresentative: "Maria Gomez",
		NitDV:               "900123456-7",
		Phone:               "3001234567",
		Email:               "parqueo@centro.co",
		Address:             "Calle 10 # 5-20",
		City:                11001,
		Neighborhood:        "Centro",
		HasBranches:         true,
		NumberOfBranches:    2,
		CompanyName:         "Parqueo Centro SAS",
		DocumentType:        "CC",
		DocumentNumber:      "1020304050",
		Status:              domain.ParkingStatusActive,
		ExternalID:          &externalID,
	}

	mock.ExpectQuery(`INSERT INTO parkit\.pre_enrolled_parkings .* RETURNING id`).
		WithArgs(
			"Maria Gomez", "900123456-7", "3001234567", "parqueo@centro.co", "Calle 10 # 5-20",
			11001, "Centro", true, 2, "Parqueo Centro SAS", "CC", "1020304050",
			nil, 1, nil, externalID,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))

	created, err := repo.Create(context.Background(), parking)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("expected id 9, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParkingRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewParkingRepository(mock)

	rows := pgxmock.NewRows(parkingColumns).AddRow(
		int64(9), "Maria Gomez", "900123456-7", "3001234567", "parqueo@centro.co", "Calle 10 # 5-20",
		11001, "Centro", false, 0, "Parqueo Centro SAS", "CC", "1020304050",
		nil, 1, "123456", nil,
	)
	mock.ExpectQuery(`SELECT .*FROM parkit\.pre_enrolled_parkings WHERE email = \$1`).
		WithArgs("parqueo@centro.co").
		WillReturnRows(rows)

	parking, err := repo.FindByEmail(context.Background(), "parqueo@centro.co")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if parking == nil || parking.ID != 9 {
		t.Fatalf("expected parking 9, got %+v", parking)
	}
	if parking.InternalID == nil || *parking.InternalID != "123456" {
		t.Fatalf("expected internal id to be populated")
	}
	if parking.ExternalID != nil || parking.IDFiles != nil {
		t.Fatalf("expected nullable columns to stay nil")
	}
}

func TestParkingRepository_FindByEmailMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewParkingRepository(mock)
	mock.ExpectQuery(`SELECT .*FROM parkit\.pre_enrolled_parkings`).
		WithArgs("none@centro.co").
		WillReturnRows(pgxmock.NewRows(parkingColumns))

	parking, err := repo.FindByEmail(context.Background(), "none@centro.co")
	if err != nil || parking != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", parking, err)
	}
}

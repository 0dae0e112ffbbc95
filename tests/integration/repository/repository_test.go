package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuiulia/partner-scoring/internal/config"
	"github.com/docuiulia/partner-scoring/internal/domain"
	"github.com/docuiulia/partner-scoring/internal/repository"
)

var testDB *sqlx.DB

const schema = `
	CREATE TABLE partners (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		cui TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE invoices (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		partner_id UUID,
		partner_cui TEXT NOT NULL DEFAULT '',
		gross_amount NUMERIC(15,2) NOT NULL,
		payment_status TEXT NOT NULL,
		invoice_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ,
		payment_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Connect to postgres database to create test database
	cfg.Database.Name = "postgres"
	adminDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to postgres database: %v", err))
	}
	defer adminDB.Close()

	testDBName := "partner_scoring_test"
	adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", testDBName))
	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", testDBName))
	if err != nil {
		panic(fmt.Sprintf("Failed to create test database: %v", err))
	}

	cfg.Database.Name = testDBName
	testDB, err = sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	if _, err := testDB.Exec(schema); err != nil {
		panic(fmt.Sprintf("Failed to initialize database schema: %v", err))
	}
}

func teardown() {
	if testDB != nil {
		testDB.Close()
	}
}

func truncateTables(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec("TRUNCATE TABLE partners, invoices")
	require.NoError(t, err)
}

func insertPartner(t *testing.T, partner *domain.Partner) {
	t.Helper()
	_, err := testDB.Exec(`
		INSERT INTO partners (id, user_id, name, cui, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		partner.ID, partner.UserID, partner.Name, partner.CUI, partner.Status,
		partner.CreatedAt, partner.UpdatedAt,
	)
	require.NoError(t, err)
}

func insertInvoice(t *testing.T, invoice *domain.Invoice) {
	t.Helper()
	_, err := testDB.Exec(`
		INSERT INTO invoices (id, user_id, partner_id, partner_cui, gross_amount,
		                      payment_status, invoice_date, due_date, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		invoice.ID, invoice.UserID, invoice.PartnerID, invoice.PartnerCUI, invoice.GrossAmount,
		invoice.PaymentStatus, invoice.InvoiceDate, invoice.DueDate, invoice.PaymentDate,
		invoice.CreatedAt,
	)
	require.NoError(t, err)
}

func newPartner(userID, name, cui string) *domain.Partner {
	now := time.Now().UTC()
	return &domain.Partner{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CUI:       cui,
		Status:    domain.PartnerStatusActive,
		CreatedAt: now.AddDate(-1, 0, 0),
		UpdatedAt: now,
	}
}

func newInvoice(userID string, partnerID *uuid.UUID, cui string, amount float64, status string) *domain.Invoice {
	now := time.Now().UTC()
	return &domain.Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		PartnerID:     partnerID,
		PartnerCUI:    cui,
		GrossAmount:   decimal.NewFromFloat(amount),
		PaymentStatus: status,
		InvoiceDate:   now.AddDate(0, -1, 0),
		CreatedAt:     now,
	}
}

func TestPartnerRepository(t *testing.T) {
	repo := repository.NewPartnerRepository(testDB)
	ctx := context.Background()

	t.Run("GetByID is scoped to the user", func(t *testing.T) {
		truncateTables(t)
		partner := newPartner("user-1", "SC Alfa SRL", "RO100")
		insertPartner(t, partner)

		found, err := repo.GetByID(ctx, "user-1", partner.ID)
		require.NoError(t, err)
		assert.Equal(t, partner.Name, found.Name)
		assert.Equal(t, partner.CUI, found.CUI)

		_, err = repo.GetByID(ctx, "user-2", partner.ID)
		assert.Error(t, err)
	})

	t.Run("GetActivePartners skips archived partners", func(t *testing.T) {
		truncateTables(t)
		active := newPartner("user-1", "SC Alfa SRL", "RO100")
		archived := newPartner("user-1", "SC Beta SRL", "RO200")
		archived.Status = domain.PartnerStatusArchived
		other := newPartner("user-2", "SC Gamma SRL", "RO300")
		insertPartner(t, active)
		insertPartner(t, archived)
		insertPartner(t, other)

		partners, err := repo.GetActivePartners(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, partners, 1)
		assert.Equal(t, active.ID, partners[0].ID)
	})

	t.Run("ListActivePartners spans all users", func(t *testing.T) {
		truncateTables(t)
		insertPartner(t, newPartner("user-1", "SC Alfa SRL", "RO100"))
		insertPartner(t, newPartner("user-2", "SC Beta SRL", "RO200"))

		partners, err := repo.ListActivePartners(ctx)
		require.NoError(t, err)
		assert.Len(t, partners, 2)
	})
}

func TestInvoiceRepository(t *testing.T) {
	repo := repository.NewInvoiceRepository(testDB)
	ctx := context.Background()

	t.Run("GetByPartner matches by reference or tax id", func(t *testing.T) {
		truncateTables(t)
		partner := newPartner("user-1", "SC Alfa SRL", "RO100")
		insertPartner(t, partner)

		// One invoice linked by id, one historical invoice carrying only the CUI
		insertInvoice(t, newInvoice("user-1", &partner.ID, "", 100, domain.PaymentStatusPaid))
		insertInvoice(t, newInvoice("user-1", nil, "RO100", 200, domain.PaymentStatusUnpaid))
		// Noise: other partner, other user
		insertInvoice(t, newInvoice("user-1", nil, "RO999", 300, domain.PaymentStatusUnpaid))
		insertInvoice(t, newInvoice("user-2", nil, "RO100", 400, domain.PaymentStatusUnpaid))

		invoices, err := repo.GetByPartner(ctx, "user-1", partner.ID, partner.CUI)
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})

	t.Run("empty tax id does not match other blank invoices", func(t *testing.T) {
		truncateTables(t)
		partner := newPartner("user-1", "SC Alfa SRL", "")
		insertPartner(t, partner)

		insertInvoice(t, newInvoice("user-1", &partner.ID, "", 100, domain.PaymentStatusPaid))
		insertInvoice(t, newInvoice("user-1", nil, "", 200, domain.PaymentStatusUnpaid))

		invoices, err := repo.GetByPartner(ctx, "user-1", partner.ID, partner.CUI)
		require.NoError(t, err)
		assert.Len(t, invoices, 1)
	})

	t.Run("SumGrossAmountByStatus totals unpaid exposure per user", func(t *testing.T) {
		truncateTables(t)
		partner := newPartner("user-1", "SC Alfa SRL", "RO100")
		insertPartner(t, partner)

		insertInvoice(t, newInvoice("user-1", &partner.ID, "", 100.50, domain.PaymentStatusUnpaid))
		insertInvoice(t, newInvoice("user-1", &partner.ID, "", 49.50, domain.PaymentStatusPartial))
		insertInvoice(t, newInvoice("user-1", &partner.ID, "", 1000, domain.PaymentStatusPaid))
		insertInvoice(t, newInvoice("user-2", nil, "RO100", 5000, domain.PaymentStatusUnpaid))

		total, err := repo.SumGrossAmountByStatus(ctx, "user-1",
			[]string{domain.PaymentStatusUnpaid, domain.PaymentStatusPartial})
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(150)), "total %s", total)
	})

	t.Run("sum over no invoices is zero", func(t *testing.T) {
		truncateTables(t)

		total, err := repo.SumGrossAmountByStatus(ctx, "user-1",
			[]string{domain.PaymentStatusUnpaid, domain.PaymentStatusPartial})
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

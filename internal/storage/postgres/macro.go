package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

// Macro is a named, persisted dice notation.
type Macro struct {
	ID        uuid.UUID
	Name      string
	Notation  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrMacroNotFound is returned when a macro lookup yields no results.
var ErrMacroNotFound = errors.New("macro not found")

// ErrMacroExists is returned when attempting to create a duplicate name.
var ErrMacroExists = errors.New("macro already exists")

// ErrInvalidNotation is returned when a macro's notation compiles to an
// empty program. The compiler itself never fails; storing notation that
// would always evaluate to 0 terms is treated as an authoring error here.
var ErrInvalidNotation = errors.New("notation compiles to no instructions")

// MacroRepository provides macro persistence operations. Every write
// validates the notation by compiling it first, so the store never holds a
// macro that resolves to an empty program.
type MacroRepository struct {
	db *pgxpool.Pool
}

// NewMacroRepository creates a MacroRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewMacroRepository(db *pgxpool.Pool) *MacroRepository {
	return &MacroRepository{db: db}
}

// validateNotation compiles text and rejects empty programs.
func validateNotation(text string) error {
	if dice.Compile(text).Len() == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidNotation, text)
	}
	return nil
}

// Create inserts a new macro.
//
// Precondition: name must be non-empty.
// Postcondition: Returns the created Macro with ID and timestamps set,
// ErrMacroExists if the name is taken, or ErrInvalidNotation if the
// notation compiles to nothing.
func (r *MacroRepository) Create(ctx context.Context, name, notation string) (Macro, error) {
	if err := validateNotation(notation); err != nil {
		return Macro{}, err
	}

	var m Macro
	err := r.db.QueryRow(ctx,
		`INSERT INTO macros (id, name, notation)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, notation, created_at, updated_at`,
		uuid.New(), name, notation,
	).Scan(&m.ID, &m.Name, &m.Notation, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Macro{}, ErrMacroExists
		}
		return Macro{}, fmt.Errorf("inserting macro: %w", err)
	}

	return m, nil
}

// Upsert inserts the macro or replaces the notation of an existing macro
// with the same name. Used by the macro-pack importer.
//
// Postcondition: Returns the stored Macro, or ErrInvalidNotation.
func (r *MacroRepository) Upsert(ctx context.Context, name, notation string) (Macro, error) {
	if err := validateNotation(notation); err != nil {
		return Macro{}, err
	}

	var m Macro
	err := r.db.QueryRow(ctx,
		`INSERT INTO macros (id, name, notation)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE
		 SET notation = EXCLUDED.notation, updated_at = now()
		 RETURNING id, name, notation, created_at, updated_at`,
		uuid.New(), name, notation,
	).Scan(&m.ID, &m.Name, &m.Notation, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Macro{}, fmt.Errorf("upserting macro: %w", err)
	}

	return m, nil
}

// GetByName retrieves a macro by its unique name.
//
// Postcondition: Returns the Macro, or ErrMacroNotFound.
func (r *MacroRepository) GetByName(ctx context.Context, name string) (Macro, error) {
	var m Macro
	err := r.db.QueryRow(ctx,
		`SELECT id, name, notation, created_at, updated_at
		 FROM macros WHERE name = $1`,
		name,
	).Scan(&m.ID, &m.Name, &m.Notation, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Macro{}, ErrMacroNotFound
		}
		return Macro{}, fmt.Errorf("querying macro: %w", err)
	}
	return m, nil
}

// Get retrieves a macro by ID.
//
// Postcondition: Returns the Macro, or ErrMacroNotFound.
func (r *MacroRepository) Get(ctx context.Context, id uuid.UUID) (Macro, error) {
	var m Macro
	err := r.db.QueryRow(ctx,
		`SELECT id, name, notation, created_at, updated_at
		 FROM macros WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.Name, &m.Notation, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Macro{}, ErrMacroNotFound
		}
		return Macro{}, fmt.Errorf("querying macro: %w", err)
	}
	return m, nil
}

// List returns all macros ordered by name.
func (r *MacroRepository) List(ctx context.Context) ([]Macro, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, notation, created_at, updated_at
		 FROM macros ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing macros: %w", err)
	}
	defer rows.Close()

	var macros []Macro
	for rows.Next() {
		var m Macro
		if err := rows.Scan(&m.ID, &m.Name, &m.Notation, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning macro: %w", err)
		}
		macros = append(macros, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating macros: %w", err)
	}
	return macros, nil
}

// Delete removes a macro by name.
//
// Postcondition: Returns nil on success, or ErrMacroNotFound if no macro
// with that name existed.
func (r *MacroRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM macros WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting macro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMacroNotFound
	}
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pymes-api/pkg/logger"
)

// Migration es un cambio de esquema versionado (semver).
type Migration struct {
	Version string
	Up      string
}

// AllMigrations contiene todas las migraciones en orden.
var AllMigrations = []Migration{
	{Version: "1.0.0", Up: migrationV1Up},
	{Version: "1.1.0", Up: migrationV11Up},
}

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const migrationV1Up = `
CREATE TABLE IF NOT EXISTS personas (
    pk_persona      BIGSERIAL PRIMARY KEY,
    nombre          TEXT NOT NULL,
    apellido        TEXT,
    rut             TEXT UNIQUE,
    correo          TEXT UNIQUE,
    numero_telefono TEXT,
    rol             TEXT
);

CREATE TABLE IF NOT EXISTS cliente (
    pk_cliente BIGSERIAL PRIMARY KEY,
    fk_persona BIGINT NOT NULL UNIQUE REFERENCES personas (pk_persona)
);

CREATE TABLE IF NOT EXISTS trabajadores (
    pk_trabajadores BIGSERIAL PRIMARY KEY,
    fk_persona      BIGINT NOT NULL REFERENCES personas (pk_persona),
    cargo           TEXT,
    fecha_ingreso   TIMESTAMPTZ NOT NULL DEFAULT now(),
    activo          BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE UNIQUE INDEX IF NOT EXISTS trabajadores_persona_activo_uq ON trabajadores (fk_persona) WHERE activo;

CREATE TABLE IF NOT EXISTS moneda (
    pk_moneda  BIGSERIAL PRIMARY KEY,
    codigo     TEXT NOT NULL UNIQUE,
    nombre     TEXT NOT NULL,
    simbolo    TEXT,
    tasa       NUMERIC(18, 6) NOT NULL DEFAULT 1 CHECK (tasa > 0),
    activo     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tiempo (
    pk_tiempo BIGSERIAL PRIMARY KEY,
    fecha     DATE NOT NULL,
    anio      INTEGER NOT NULL,
    mes       INTEGER NOT NULL CHECK (mes BETWEEN 1 AND 12),
    dia       INTEGER NOT NULL CHECK (dia BETWEEN 1 AND 31)
);

CREATE TABLE IF NOT EXISTS inventario (
    pk_inventario   BIGSERIAL PRIMARY KEY,
    fk_id_persona   BIGINT REFERENCES personas (pk_persona),
    sku             TEXT,
    producto        TEXT NOT NULL,
    categoria       TEXT,
    stock           INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    precio_unitario NUMERIC(14, 2) NOT NULL DEFAULT 0 CHECK (precio_unitario >= 0),
    creado_en       TIMESTAMPTZ NOT NULL DEFAULT now(),
    actualizado_en  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE SEQUENCE IF NOT EXISTS order_number_seq;

CREATE TABLE IF NOT EXISTS factura (
    pk_factura  BIGSERIAL PRIMARY KEY,
    fk_cliente  BIGINT NOT NULL REFERENCES cliente (pk_cliente),
    fk_vendedor BIGINT NOT NULL REFERENCES trabajadores (pk_trabajadores),
    fk_moneda   BIGINT NOT NULL REFERENCES moneda (pk_moneda),
    fk_tiempo   BIGINT NOT NULL REFERENCES tiempo (pk_tiempo),
    fk_session  UUID NOT NULL,
    nro_factura TEXT NOT NULL UNIQUE,
    subtotal    NUMERIC(14, 2) NOT NULL CHECK (subtotal >= 0),
    impuesto    NUMERIC(14, 2) NOT NULL CHECK (impuesto >= 0),
    total       NUMERIC(14, 2) NOT NULL CHECK (total >= 0),
    estado      SMALLINT NOT NULL DEFAULT 1 CHECK (estado BETWEEN 1 AND 5),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orden (
    pk_orden        BIGSERIAL PRIMARY KEY,
    fk_factura      BIGINT NOT NULL REFERENCES factura (pk_factura) ON DELETE CASCADE,
    fk_inventario   BIGINT NOT NULL REFERENCES inventario (pk_inventario),
    cantidad        INTEGER NOT NULL CHECK (cantidad > 0),
    precio_unitario NUMERIC(14, 2) NOT NULL CHECK (precio_unitario >= 0),
    total_linea     NUMERIC(14, 2) NOT NULL
);

CREATE TABLE IF NOT EXISTS movimientos_inventario (
    pk_movimiento BIGSERIAL PRIMARY KEY,
    fk_inventario BIGINT NOT NULL REFERENCES inventario (pk_inventario),
    tipo          TEXT NOT NULL CHECK (tipo IN ('ENTRADA', 'SALIDA')),
    cantidad      INTEGER NOT NULL CHECK (cantidad > 0),
    motivo        TEXT,
    fk_persona    BIGINT REFERENCES personas (pk_persona),
    fk_tiempo     BIGINT REFERENCES tiempo (pk_tiempo),
    fk_session    UUID,
    creado_en     TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const migrationV11Up = `
CREATE INDEX IF NOT EXISTS orden_factura_idx ON orden (fk_factura);
CREATE INDEX IF NOT EXISTS movimientos_inventario_item_idx ON movimientos_inventario (fk_inventario, creado_en DESC);
CREATE INDEX IF NOT EXISTS factura_created_idx ON factura (created_at DESC);`

// PendingMigrations devuelve, ordenadas por versión, las migraciones posteriores a current.
// current vacío equivale a 0.0.0.
func PendingMigrations(current string, all []Migration) ([]Migration, error) {
	cur := semver.MustParse("0.0.0")
	if current != "" {
		v, err := semver.NewVersion(current)
		if err != nil {
			return nil, fmt.Errorf("versión de esquema inválida %s: %w", current, err)
		}
		cur = v
	}

	type versioned struct {
		v *semver.Version
		m Migration
	}
	list := make([]versioned, 0, len(all))
	for _, m := range all {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return nil, fmt.Errorf("versión de migración inválida %s: %w", m.Version, err)
		}
		if cur.LessThan(v) {
			list = append(list, versioned{v: v, m: m})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].v.LessThan(list[j].v) })

	out := make([]Migration, len(list))
	for i, x := range list {
		out[i] = x.m
	}
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su propia transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if _, err := pool.Exec(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("crear schema_version: %w", err)
	}
	current, err := currentVersion(ctx, pool)
	if err != nil {
		return err
	}
	pending, err := PendingMigrations(current, AllMigrations)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := applyMigration(ctx, pool, m); err != nil {
			return err
		}
		log.Info().Str("version", m.Version).Msg("migración aplicada")
	}
	return nil
}

func currentVersion(ctx context.Context, q Querier) (string, error) {
	rows, err := q.Query(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return "", fmt.Errorf("leer schema_version: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("leer schema_version: %w", err)
	}

	var max *semver.Version
	for _, s := range versions {
		v, err := semver.NewVersion(s)
		if err != nil {
			return "", fmt.Errorf("versión de esquema inválida %s: %w", s, err)
		}
		if max == nil || max.LessThan(v) {
			max = v
		}
	}
	if max == nil {
		return "", nil
	}
	return max.Original(), nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migración %s: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.Up); err != nil {
		return fmt.Errorf("aplicar migración %s: %w", m.Version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.Version); err != nil {
		if isUniqueViolation(err) {
			return errors.New("migración " + m.Version + " aplicada por otra instancia")
		}
		return fmt.Errorf("registrar migración %s: %w", m.Version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migración %s: %w", m.Version, err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"sqlbench/internal/depsort"
	"sqlbench/internal/engine"
	"sqlbench/internal/errs"
	"sqlbench/internal/metrics"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
	"sqlbench/internal/utils"
)

// ExportService turns the live database into a self-contained SQL script:
// drops, creates, foreign keys, data and sequence resets, ordered so the
// script replays cleanly on an empty database.
type ExportService struct {
	schemaService *SchemaService
	tableRepo     *repositories.TableRepository
	log           zerolog.Logger
}

func NewExportService(schemaService *SchemaService, tableRepo *repositories.TableRepository, log zerolog.Logger) *ExportService {
	return &ExportService{
		schemaService: schemaService,
		tableRepo:     tableRepo,
		log:           log,
	}
}

// Generate refreshes the catalog and renders the export script. Tables
// whose data cannot be read are listed in SkippedTables and reported as an
// export_partial error alongside the otherwise complete result.
func (s *ExportService) Generate(ctx context.Context) (*models.ExportResult, error) {
	timer := prometheus.NewTimer(metrics.ExportDuration)
	defer timer.ObserveDuration()

	snap, err := s.schemaService.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	ordered := depsort.Sort(snap.Tables, snap.ForeignKeys)
	generatedAt := time.Now()

	var sb strings.Builder
	sb.WriteString("-- sqlbench database export\n")
	sb.WriteString("-- Generated: " + generatedAt.Format(time.RFC3339) + "\n\n")

	for _, table := range depsort.Reverse(ordered) {
		sb.WriteString(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;\n", utils.QuoteIdentifier(table.Name)))
	}
	sb.WriteString("\n")

	for _, table := range ordered {
		sb.WriteString(createTableSQL(table))
		sb.WriteString("\n")
	}

	for _, table := range ordered {
		writeForeignKeys(&sb, table)
	}
	sb.WriteString("\n")

	var skipped []string
	for _, table := range ordered {
		res, err := s.tableRepo.AllRows(ctx, table.Name)
		if err != nil {
			s.log.Warn().Err(err).Str("table", table.Name).Msg("skipping table data in export")
			skipped = append(skipped, table.Name)
			continue
		}
		writeInserts(&sb, table.Name, res)
	}

	for _, table := range ordered {
		for _, pk := range table.PrimaryKeys() {
			sb.WriteString(fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence(%s, %s), COALESCE((SELECT MAX(%s) FROM %s), 1));\n",
				utils.QuoteLiteral(table.Name), utils.QuoteLiteral(pk),
				utils.QuoteIdentifier(pk), utils.QuoteIdentifier(table.Name)))
		}
	}

	result := &models.ExportResult{
		Script:        sb.String(),
		SkippedTables: skipped,
		GeneratedAt:   generatedAt,
	}

	if len(skipped) > 0 {
		return result, errs.New(errs.KindExportPartial,
			fmt.Sprintf("data skipped for %s", strings.Join(skipped, ", ")))
	}
	return result, nil
}

func createTableSQL(table models.Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", utils.QuoteIdentifier(table.Name)))

	lines := make([]string, 0, len(table.Columns)+1)
	for _, col := range table.Columns {
		lines = append(lines, "  "+columnDef(col))
	}
	if pks := table.PrimaryKeys(); len(pks) > 0 {
		quoted := make([]string, len(pks))
		for i, pk := range pks {
			quoted[i] = utils.QuoteIdentifier(pk)
		}
		lines = append(lines, "  PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString("\n);\n")
	return sb.String()
}

func columnDef(col models.Column) string {
	def := utils.QuoteIdentifier(col.Name) + " " + columnType(col)
	if !col.Nullable {
		def += " NOT NULL"
	}
	// Serial columns already imply their nextval default.
	if col.Default != nil && !isSerial(col) {
		def += " DEFAULT " + stripCast(*col.Default)
	}
	return def
}

// isSerial reports whether the column's default draws from a sequence.
func isSerial(col models.Column) bool {
	return col.Default != nil && strings.Contains(*col.Default, "nextval(")
}

func columnType(col models.Column) string {
	if isSerial(col) {
		switch strings.ToLower(col.DataType) {
		case "bigint":
			return "BIGSERIAL"
		case "smallint":
			return "SMALLSERIAL"
		default:
			return "SERIAL"
		}
	}
	return col.DataType
}

// stripCast drops a ::type suffix from a default expression, so
// 'active'::character varying comes out as 'active'.
func stripCast(expr string) string {
	if i := strings.Index(expr, "::"); i >= 0 {
		return expr[:i]
	}
	return expr
}

func writeForeignKeys(sb *strings.Builder, table models.Table) {
	for _, col := range table.Columns {
		if col.References == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT fk_%s_%s FOREIGN KEY (%s) REFERENCES %s (%s);\n",
			utils.QuoteIdentifier(table.Name), table.Name, col.Name,
			utils.QuoteIdentifier(col.Name),
			utils.QuoteIdentifier(col.References.Table),
			utils.QuoteIdentifier(col.References.Column)))
	}
}

func writeInserts(sb *strings.Builder, table string, res *engine.Result) {
	if len(res.Rows) == 0 {
		return
	}

	columns := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		columns[i] = utils.QuoteIdentifier(f.Name)
	}
	columnList := strings.Join(columns, ", ")

	for _, row := range res.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = sqlValue(v)
		}
		sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
			utils.QuoteIdentifier(table), columnList, strings.Join(values, ", ")))
	}
	sb.WriteString("\n")
}

// sqlValue renders a row value as a SQL literal. UUID and NUMERIC columns
// come off the wire as [16]byte and pgtype.Numeric, so both get their
// Postgres text form rather than the Go default formatting.
func sqlValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return utils.QuoteLiteral(t)
	case []byte:
		return utils.QuoteLiteral(string(t))
	case [16]byte:
		return "'" + uuid.UUID(t).String() + "'"
	case time.Time:
		return "'" + t.Format(time.RFC3339Nano) + "'"
	case pgtype.Numeric:
		return numericLiteral(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", t)
	default:
		return utils.QuoteLiteral(fmt.Sprintf("%v", t))
	}
}

// numericLiteral renders a NUMERIC value as decimal text. The specials are
// handled up front: Value() on a NaN numeric stringifies a nil big.Int.
func numericLiteral(n pgtype.Numeric) string {
	switch {
	case !n.Valid:
		return "NULL"
	case n.NaN:
		return "'NaN'"
	case n.InfinityModifier == pgtype.Infinity:
		return "'Infinity'"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "'-Infinity'"
	}
	v, err := n.Value()
	if err != nil || v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}

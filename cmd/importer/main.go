// cmd/importer/main.go
// Imports fighter data from a legacy MySQL database into the local PostgreSQL
// database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/fighters?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/importer
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/openfightdb/fighterapi/config"
	bundb "github.com/openfightdb/fighterapi/db"
	"github.com/openfightdb/fighterapi/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/fighters?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return importUsers(ctx, myDB, pgDB) }},
		{"fighters", func() (int, error) { return importFighters(ctx, myDB, pgDB) }},
		{"base_stats", func() (int, error) { return importBaseStats(ctx, myDB, pgDB) }},
		{"extended_stats", func() (int, error) { return importExtendedStats(ctx, myDB, pgDB) }},
		{"fights_results", func() (int, error) { return importFightsResults(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("import %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows imported", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("import complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func nullDate(n sql.NullTime) *string {
	if !n.Valid {
		return nil
	}
	s := n.Time.Format("2006-01-02")
	return &s
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// --- per-table imports ---

func importUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT user_id, email, hashed_password FROM users")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.User
	total := 0
	for rows.Next() {
		var r models.User
		if err := rows.Scan(&r.UserID, &r.Email, &r.HashedPassword); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importFighters(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT fighter_id, name, nickname, surname, country, weight_class,
		        wins, loss, draw, current_streak, last_fight_date, last_updated
		 FROM fighters`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Fighter
	total := 0
	for rows.Next() {
		var (
			fighterID     int
			name          sql.NullString
			nickname      sql.NullString
			surname       sql.NullString
			country       sql.NullString
			weightClass   sql.NullString
			wins          sql.NullInt64
			loss          sql.NullInt64
			draw          sql.NullInt64
			currentStreak sql.NullInt64
			lastFightDate sql.NullTime
			lastUpdated   time.Time
		)
		if err := rows.Scan(&fighterID, &name, &nickname, &surname, &country, &weightClass,
			&wins, &loss, &draw, &currentStreak, &lastFightDate, &lastUpdated); err != nil {
			return total, err
		}
		batch = append(batch, models.Fighter{
			FighterID:     fighterID,
			Name:          nullStr(name),
			Nickname:      nullStr(nickname),
			Surname:       nullStr(surname),
			Country:       nullStr(country),
			WeightClass:   nullStr(weightClass),
			Wins:          nullInt(wins),
			Loss:          nullInt(loss),
			Draw:          nullInt(draw),
			CurrentStreak: nullInt(currentStreak),
			LastFightDate: nullDate(lastFightDate),
			LastUpdated:   fmtDate(lastUpdated),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importBaseStats(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT fighter_id, weight, height, reach, age, last_updated FROM base_stats")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.BaseStats
	total := 0
	for rows.Next() {
		var (
			fighterID   int
			weight      sql.NullFloat64
			height      sql.NullFloat64
			reach       sql.NullFloat64
			age         sql.NullInt64
			lastUpdated time.Time
		)
		if err := rows.Scan(&fighterID, &weight, &height, &reach, &age, &lastUpdated); err != nil {
			return total, err
		}
		batch = append(batch, models.BaseStats{
			FighterID:   fighterID,
			Weight:      nullFloat(weight),
			Height:      nullFloat(height),
			Reach:       nullFloat(reach),
			Age:         nullInt(age),
			LastUpdated: fmtDate(lastUpdated),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importExtendedStats(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT fighter_id, stance, slpm, str_acc, sapm, str_def,
		        td_avg, td_acc, td_def, sub_avg, last_updated
		 FROM extended_stats`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.ExtendedStats
	total := 0
	for rows.Next() {
		var (
			fighterID   int
			stance      sql.NullString
			slpm        sql.NullFloat64
			strAcc      sql.NullFloat64
			sapm        sql.NullFloat64
			strDef      sql.NullFloat64
			tdAvg       sql.NullFloat64
			tdAcc       sql.NullFloat64
			tdDef       sql.NullFloat64
			subAvg      sql.NullFloat64
			lastUpdated time.Time
		)
		if err := rows.Scan(&fighterID, &stance, &slpm, &strAcc, &sapm, &strDef,
			&tdAvg, &tdAcc, &tdDef, &subAvg, &lastUpdated); err != nil {
			return total, err
		}
		batch = append(batch, models.ExtendedStats{
			FighterID:   fighterID,
			Stance:      nullStr(stance),
			SLpM:        nullFloat(slpm),
			StrAcc:      nullFloat(strAcc),
			SApM:        nullFloat(sapm),
			StrDef:      nullFloat(strDef),
			TDAvg:       nullFloat(tdAvg),
			TDAcc:       nullFloat(tdAcc),
			TDDef:       nullFloat(tdDef),
			SubAvg:      nullFloat(subAvg),
			LastUpdated: fmtDate(lastUpdated),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importFightsResults(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT fighter_id, win_by_ko_tko, loss_by_ko_tko, win_by_sub, loss_by_sub,
		        win_by_dec, loss_by_dec, non_contest, last_updated
		 FROM fights_results`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.FightsResults
	total := 0
	for rows.Next() {
		var (
			fighterID   int
			winKo       sql.NullInt64
			lossKo      sql.NullInt64
			winSub      sql.NullInt64
			lossSub     sql.NullInt64
			winDec      sql.NullInt64
			lossDec     sql.NullInt64
			nonContest  sql.NullInt64
			lastUpdated time.Time
		)
		if err := rows.Scan(&fighterID, &winKo, &lossKo, &winSub, &lossSub,
			&winDec, &lossDec, &nonContest, &lastUpdated); err != nil {
			return total, err
		}
		batch = append(batch, models.FightsResults{
			FighterID:   fighterID,
			WinByKoTko:  nullInt(winKo),
			LossByKoTko: nullInt(lossKo),
			WinBySub:    nullInt(winSub),
			LossBySub:   nullInt(lossSub),
			WinByDec:    nullInt(winDec),
			LossByDec:   nullInt(lossDec),
			NonContest:  nullInt(nonContest),
			LastUpdated: fmtDate(lastUpdated),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"users_user_id_seq", "users", "user_id"},
		{"fighters_fighter_id_seq", "fighters", "fighter_id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}

package database

// The signature store keeps the signatures of typed declarations in a SQL database, with
// the digest of the source they were typed from, so that other tools can see what a
// module provides without typing it again.

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tim-hardcastle/welang/source/ast"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// List of SQL drivers for when I want to import more: https://zchee.github.io/golang-wiki/SQLDrivers/

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQLite": "sqlite", "SQL Server": "sqlserver"}
)

const schema = `CREATE TABLE IF NOT EXISTS welang_signatures (
    mod_path varchar(255),
    decl_name varchar(255),
    in_type varchar(1024),
    out_type varchar(1024),
    digest varchar(64),
PRIMARY KEY (mod_path, decl_name))`

type Store struct {
	db     *sql.DB
	driver string
}

// A signature as stored: the types are kept in their structural string form.
type Row struct {
	Module      string
	Declaration string
	In          string
	Out         string
	Digest      string
}

func (r Row) String() string {
	path := r.Declaration
	if r.Module != "" {
		path = r.Module + "." + path
	}
	return path + " : " + r.In + " -> " + r.Out
}

// Opens the store and makes sure its table exists. The driver may be given either by
// its name in the menu, e.g. "Postgres", or as the Go driver name, e.g. "postgres".
func Open(driver, dsn string) (*Store, error) {
	name, ok := drivers[driver]
	if !ok {
		name = driver
		if !isDriverName(name) {
			return nil, errors.Errorf("unknown SQL driver %q", driver)
		}
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s store", name)
	}
	if name == "sqlite" {
		db.SetMaxOpenConns(1) // Each connection to ":memory:" would get its own database.
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "can't reach %s store", name)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "can't create signature table")
	}
	return &Store{db: db, driver: name}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Driver() string {
	return s.driver
}

// Lists the signatures of the resolved declarations of a typed tree.
func Collect(root *ast.Node) []Row {
	result := []Row{}
	for _, sig := range ast.Signatures(root) {
		result = append(result, Row{Module: sig.Module, Declaration: sig.Declaration,
			In: sig.In.String(), Out: sig.Out.String(), Digest: sig.Digest})
	}
	return result
}

// Replaces everything stored about each module that has rows in the list.
func (s *Store) Save(rows []Row) error {
	byModule := map[string][]Row{}
	for _, r := range rows {
		byModule[r.Module] = append(byModule[r.Module], r)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "can't start saving signatures")
	}
	del := "DELETE FROM welang_signatures WHERE mod_path = " + s.placeholders(1)
	ins := "INSERT INTO welang_signatures (mod_path, decl_name, in_type, out_type, digest) VALUES (" + s.placeholders(5) + ")"
	for _, module := range sortedModules(byModule) {
		if _, err := tx.Exec(del, module); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "can't clear signatures of module %q", module)
		}
		for _, r := range byModule[module] {
			if _, err := tx.Exec(ins, r.Module, r.Declaration, r.In, r.Out, r.Digest); err != nil {
				tx.Rollback()
				return errors.Wrapf(err, "can't save signature of %s", r.Declaration)
			}
		}
	}
	return errors.Wrap(tx.Commit(), "can't save signatures")
}

// Reads back the signatures of a module, in order of declaration name.
func (s *Store) Signatures(module string) ([]Row, error) {
	query := "SELECT mod_path, decl_name, in_type, out_type, digest FROM welang_signatures WHERE mod_path = " +
		s.placeholders(1) + " ORDER BY decl_name"
	rows, err := s.db.Query(query, module)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read signatures of module %q", module)
	}
	defer rows.Close()
	result := []Row{}
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Module, &r.Declaration, &r.In, &r.Out, &r.Digest); err != nil {
			return nil, errors.Wrap(err, "can't read signature")
		}
		result = append(result, r)
	}
	return result, errors.Wrap(rows.Err(), "can't read signatures")
}

// Whether the store holds signatures for the module, all typed from source with the
// given digest.
func (s *Store) Fresh(module, digest string) (bool, error) {
	rows, err := s.Signatures(module)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	for _, r := range rows {
		if r.Digest != digest {
			return false, nil
		}
	}
	return true, nil
}

// The drivers don't agree about how to write the parameters of a query.
func (s *Store) placeholders(n int) string {
	result := []string{}
	for i := 1; i <= n; i++ {
		switch s.driver {
		case "postgres":
			result = append(result, "$"+strconv.Itoa(i))
		case "oracle":
			result = append(result, ":"+strconv.Itoa(i))
		case "sqlserver":
			result = append(result, "@p"+strconv.Itoa(i))
		default:
			result = append(result, "?")
		}
	}
	return strings.Join(result, ", ")
}

func sortedModules(m map[string][]Row) []string {
	result := []string{}
	for k := range m {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func isDriverName(name string) bool {
	for _, v := range drivers {
		if v == name {
			return true
		}
	}
	return false
}

func GetDriverOptions() string {
	result := "The following SQL drivers are available: \n\n"
	for k, v := range GetSortedDrivers() {
		result = result + fmt.Sprintf("  [%v] %v\n", k, v)
	}
	return result
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

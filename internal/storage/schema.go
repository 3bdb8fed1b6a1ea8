// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the users and user_stats tables.
package storage

// initSchema creates the tables if they do not exist. Column names match
// databases created by earlier deployments so existing files open unchanged.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		steps INTEGER,
		calories INTEGER,
		active_min INTEGER,
		sleep_hours TEXT,
		heart_rate INTEGER,
		weight INTEGER
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT UNIQUE,
		password TEXT
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

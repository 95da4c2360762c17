/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package common

import (
	"database/sql"
	"time"

	// postgres driver
	_ "github.com/lib/pq"
)

// InitializeDatabase opens a PostgreSQL connection pool and verifies it with a ping.
//
// Parameters:
//   - cfg: PostgreSQL connection and pool settings
//
// Returns:
//   - *sql.DB: Configured database connection pool
//   - error: Error if the pool cannot be opened or the database is unreachable
//
// Example:
//
//	db, err := InitializeDatabase(cfg.Postgres)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("database initialization failed")
//	}
//	defer db.Close()
func InitializeDatabase(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, NewInternalServerError("DB-INIT-OPEN Failed to open database: " + err.Error())
	}
	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(time.Minute * time.Duration(cfg.ConnMaxLifetimeMinutes))

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, NewInternalServerError("DB-INIT-PING Failed to reach database: " + err.Error())
	}
	return db, nil
}

package database

import _ "embed"

// Schema is the DDL produced by applying every migration, used to set up
// test stores without running golang-migrate.
//
//go:embed sqlc/schema.sql
var Schema string

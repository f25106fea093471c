// Package config loads application settings from a YAML file.
//
// ${VAR} references in the file are expanded from the environment, then
// MVC_* variables override individual fields (MVC_DB_DRIVER, MVC_DB_NAME,
// MVC_SERVER_ADDRESS, MVC_LOG_LEVEL, ...). Missing fields get defaults:
// a SQLite database at storage/database.sqlite, local storage under
// storage/app and views under views/.
package config

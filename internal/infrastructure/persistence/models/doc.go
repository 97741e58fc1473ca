// Package models contains the GORM persistence structs. Each model maps one
// table and converts to and from its domain entity with ToDomain/FromDomain,
// keeping gorm tags out of the domain packages.
package models

// Package services holds the application service layer between the HTTP
// transport and the catalog/regression domain packages. The dataset service
// owns the loaded table: handlers never touch the loader directly.
package services

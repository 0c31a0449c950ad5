// Package domain defines the catalog entities exchanged with the content gateway.
package domain

// Package users defines accounts, roles, permissions and the authentication
// contracts of the platform.
package users

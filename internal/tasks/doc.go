// Package tasks orchestrates link resolution and track suggestion between the
// catalog and title-lookup services, including concurrent bulk resolution.
package tasks

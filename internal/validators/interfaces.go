// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks ledger input before it reaches the services.
//
// A [Validator] receives the value to check and, optionally, the names of the
// fields to check. Without names every rule of the value's type applies; with
// names only those rules run, which is how partial updates are validated.
// Failures wrap the field's sentinel error so callers can match them with
// errors.Is.
package validators

import "context"

// Validator validates one value. Unknown types yield [ErrUnsupportedType].
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}

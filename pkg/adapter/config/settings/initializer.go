// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// OverwriteNil fills an omitted optional setting with a default value.
// If (*dst) is nil, it is set to point to a new copy of (*src), so
// later changes of the default do not leak into the settings.
// A non-nil (*dst) or a nil src leaves (*dst) untouched.
func OverwriteNil[T any](dst **T, src *T) {
	if (*dst) != nil || src == nil {
		return
	}
	t := *src
	(*dst) = &t
}

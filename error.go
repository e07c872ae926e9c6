// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import "errors"

var (
	ErrExplanationsUnsupported = errors.New("undoing rewrites with explanations enabled is not supported")
	ErrUnsupportedApplier      = errors.New("applier does not expose a pattern ast")
	ErrEmptyPattern            = errors.New("empty pattern ast")
	ErrMissingBinding          = errors.New("substitution is missing a binding")
	ErrNotExtractable          = errors.New("no extractable term")
	ErrInvalidPattern          = errors.New("invalid pattern")
	ErrInvalidTerm             = errors.New("invalid term")
)

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

//go:generate go tool stringer -type=Code

// Code is the numeric classification of a failure.
// Values outside the reserved range are caller-defined or passed-through
// operating-system error numbers.
type Code int32

// Reserved failure codes.
const (
	CodeIO      Code = iota + 1 // I/O failure
	CodeAlloc                   // allocation failure
	CodeParse                   // parse failure
	CodeInvalid                 // invalid argument
	CodeLimit                   // fixed-capacity resource exhausted
)

// Error implements error so that a Code can be used as an [errors.Is] target.
func (c Code) Error() string {
	return c.String()
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// I/O
	IOLoadFileError  Code = 100
	IOWriteFileError Code = 101

	// Parsing
	SynInfo        Code = 1000
	SynSyntaxError Code = 1001
	SynMissingNode Code = 1002

	// Translation. Translation never fails outright: these record where the
	// output degraded and why.
	TranslateInfo          Code = 2000
	TranslatePassThrough   Code = 2001
	TranslateSkippedFunc   Code = 2002
	TranslateSkippedClass  Code = 2003
	TranslateDuplicateName Code = 2004
)

func (c Code) String() string {
	switch c {
	case IOLoadFileError:
		return "IO0100"
	case IOWriteFileError:
		return "IO0101"
	case SynInfo:
		return "SYN1000"
	case SynSyntaxError:
		return "SYN1001"
	case SynMissingNode:
		return "SYN1002"
	case TranslateInfo:
		return "TRN2000"
	case TranslatePassThrough:
		return "TRN2001"
	case TranslateSkippedFunc:
		return "TRN2002"
	case TranslateSkippedClass:
		return "TRN2003"
	case TranslateDuplicateName:
		return "TRN2004"
	default:
		return fmt.Sprintf("CODE%04d", uint16(c))
	}
}

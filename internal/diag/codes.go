package diag

import (
	"fmt"
)

type Code uint16

// Коды сгруппированы по фазам. Диапазоны резервируем с запасом:
// токенизатор чисто механический и сам не ошибается, поэтому
// лексического диапазона нет.
const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Синтаксис директив
	SynInfo                Code = 2000
	SynUnterminatedBracket Code = 2001
	SynMalformedField      Code = 2002
	SynInvalidTimestamp    Code = 2003

	// Построение документа
	BuildInfo               Code = 3000
	BuildNonMonotonicTiming Code = 3001
	BuildUnknownSpeaker     Code = 3002

	// Сериализация
	FmtInfo          Code = 4000
	FmtEncodingError Code = 4001

	// Ошибки I/O
	IOLoadFileError Code = 5001

	// Конвертеры форматов
	InteropInfo              Code = 6000
	InteropUnsupportedFormat Code = 6001
	InteropMalformedInput    Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	SynInfo:                  "Syntax information",
	SynUnterminatedBracket:   "Unterminated bracket",
	SynMalformedField:        "Malformed directive field",
	SynInvalidTimestamp:      "Invalid timestamp",
	BuildInfo:                "Build information",
	BuildNonMonotonicTiming:  "Non-monotonic timing",
	BuildUnknownSpeaker:      "Unknown speaker",
	FmtInfo:                  "Serializer information",
	FmtEncodingError:         "Content outside declared encoding",
	IOLoadFileError:          "Failed to load file",
	InteropInfo:              "Interop information",
	InteropUnsupportedFormat: "Unsupported interop format",
	InteropMalformedInput:    "Malformed interop input",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package control

import (
	"fmt"

	"github.com/iov-one/stablecoin/errors"
)

// RequestType is the control domain of a request.
type RequestType int32

const (
	RequestTypeTokenSupply RequestType = 0
	RequestTypeTransaction RequestType = 1
	RequestTypeSignatory   RequestType = 2
	RequestTypeThreshold   RequestType = 3
	RequestTypeWhitelist   RequestType = 4
)

// RequestTypes lists all request types in numeric order.
var RequestTypes = []RequestType{
	RequestTypeTokenSupply,
	RequestTypeTransaction,
	RequestTypeSignatory,
	RequestTypeThreshold,
	RequestTypeWhitelist,
}

var requestTypeNames = map[RequestType]string{
	RequestTypeTokenSupply: "TOKEN_SUPPLY",
	RequestTypeTransaction: "TRANSACTION",
	RequestTypeSignatory:   "SIGNATORY",
	RequestTypeThreshold:   "THRESHOLD",
	RequestTypeWhitelist:   "WHITELIST",
}

func (t RequestType) String() string {
	if n, ok := requestTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("RequestType(%d)", int32(t))
}

// Validate returns an error if this is not a known request type.
func (t RequestType) Validate() error {
	if _, ok := requestTypeNames[t]; !ok {
		return errors.Wrapf(errors.ErrInvalidInput, "unknown request type %d", int32(t))
	}
	return nil
}

// Subtype is the operation of a request within its domain. Its meaning
// depends on the request type.
type Subtype uint32

const (
	SubtypeBurn Subtype = 0
	SubtypeMint Subtype = 1

	SubtypePause   Subtype = 0
	SubtypeUnpause Subtype = 1

	SubtypeRemove Subtype = 0
	SubtypeAdd    Subtype = 1

	SubtypeUpdate Subtype = 0
)

// SubtypeCount returns the number of subtypes a request type has. It is the
// number of thresholds configured for that type.
func SubtypeCount(t RequestType) int {
	switch t {
	case RequestTypeTokenSupply, RequestTypeTransaction, RequestTypeSignatory, RequestTypeWhitelist:
		return 2
	case RequestTypeThreshold:
		return 1
	default:
		return 0
	}
}

// ValidateSubtype returns an error unless the subtype exists for the type.
func ValidateSubtype(t RequestType, s Subtype) error {
	if int(s) >= SubtypeCount(t) {
		return errors.Wrapf(errors.ErrInvalidInput, "unknown subtype %d of %s", uint32(s), t)
	}
	return nil
}

// Status is the lifecycle state of a request.
type Status int32

const (
	StatusInProgress Status = 0
	StatusAccepted   Status = 1
	StatusExecuted   Status = 2
	StatusCancelled  Status = 3
)

var statusNames = map[Status]string{
	StatusInProgress: "IN_PROGRESS",
	StatusAccepted:   "ACCEPTED",
	StatusExecuted:   "EXECUTED",
	StatusCancelled:  "CANCELLED",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// Validate returns an error if this is not a known status.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "unknown status %d", int32(s))
	}
	return nil
}

// Terminal returns true for statuses no transition leaves.
func (s Status) Terminal() bool {
	return s == StatusExecuted || s == StatusCancelled
}

package status

// Reason is the in-band failure text carried by an envelope.
type Reason string

const (
	ReasonNoData            Reason = "no data"
	ReasonQueryError        Reason = "query error"
	ReasonParameterNotFound Reason = "parameter not found"
	ReasonInterfaceNotFound Reason = "interface not found"
	ReasonInvalidParameter  Reason = "invalid parameter"
	ReasonUnknownAction     Reason = "unknown action"
)

func (r Reason) String() string {
	return string(r)
}

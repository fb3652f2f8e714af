package codec

// Wire structs mirror the canonical layout field for field. Field
// order here is emission order.

type wireDocument struct {
	Name    string       `json:"name"`
	Type    scalar       `json:"type"`
	Offset  scalar       `json:"offset"`
	Objects []wireObject `json:"objects"`
}

type wireObject struct {
	ID       string      `json:"id"`
	Name     *string     `json:"name"`
	Parent   string      `json:"p"`
	PT       *scalar     `json:"pt,omitempty"`
	PO       []scalar    `json:"po,omitempty"`
	Depth    *scalar     `json:"d,omitempty"`
	Kind     scalar      `json:"ot"`
	Shape    scalar      `json:"shape"`
	Option   scalar      `json:"so"`
	Text     *string     `json:"text,omitempty"`
	Start    scalar      `json:"st"`
	Autokill *scalar     `json:"akt,omitempty"`
	AKOffset scalar      `json:"ako"`
	Origin   *wireVec    `json:"o,omitempty"`
	Editor   *wireEditor `json:"ed,omitempty"`
	Events   *wireEvents `json:"events"`
}

type wireVec struct {
	X scalar `json:"x"`
	Y scalar `json:"y"`
}

type wireEditor struct {
	Locked scalar `json:"locked"`
	Shrink scalar `json:"shrink"`
	Bin    scalar `json:"bin"`
	Layer  scalar `json:"layer"`
}

type wireEvents struct {
	Pos []wireKeyframe `json:"pos"`
	Sca []wireKeyframe `json:"sca"`
	Rot []wireKeyframe `json:"rot"`
	Col []wireKeyframe `json:"col"`
}

type wireKeyframe struct {
	T  scalar  `json:"t"`
	X  scalar  `json:"x"`
	Y  *scalar `json:"y,omitempty"`
	CT string  `json:"ct"`
	R  *scalar `json:"r,omitempty"`
	RX *scalar `json:"rx,omitempty"`
	RY *scalar `json:"ry,omitempty"`
	RZ *scalar `json:"rz,omitempty"`
}

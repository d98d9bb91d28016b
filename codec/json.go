package codec

import "encoding/json"

// JSON is the encoding/json codec, kept for snapshots written with it and for
// callers that want no extra dependency on the read path.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }

// Default is the codec new checkpoints use.
var Default Codec = GoJSON{}

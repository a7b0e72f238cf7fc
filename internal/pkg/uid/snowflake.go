package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates sortable numeric identifiers.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a snowflake generator for node 1.
//
// Use NewSnowflakeNode when running multiple instances so each gets a
// distinct node number.
func NewSnowflake() (*Snowflake, error) {
	return NewSnowflakeNode(1)
}

// NewSnowflakeNode returns a snowflake generator for the given node number.
func NewSnowflakeNode(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns a new unique identifier.
func (s *Snowflake) Generate() uint64 {
	return uint64(s.node.Generate().Int64())
}

package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// ResultSet is the wire form of the key or value column of a query result.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []stablecoin.Model) *ResultSet {
	return column(models, func(m stablecoin.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []stablecoin.Model) *ResultSet {
	return column(models, func(m stablecoin.Model) []byte { return m.Value })
}

func column(models []stablecoin.Model, pick func(stablecoin.Model) []byte) *ResultSet {
	set := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, pick(m))
	}
	return set
}

// JoinResults pairs the key and value columns of a query response again.
func JoinResults(keys, values *ResultSet) ([]stablecoin.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]stablecoin.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, stablecoin.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of a serialized result set
// into dest. An empty set gives ErrNotFound.
func UnmarshalOneResult(raw []byte, dest proto.Message) error {
	var set ResultSet
	if err := proto.Unmarshal(raw, &set); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(set.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	if err := proto.Unmarshal(set.Results[0], dest); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}

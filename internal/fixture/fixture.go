// Package fixture 从 YAML 文件读取自定义局面
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xiangqi/internal/xiangqi"
)

type Setup struct {
	Name   string        `yaml:"name"`
	Pieces []PieceRecord `yaml:"pieces"`
}

// PieceRecord 也用作 HTTP 接口里的摆子格式
type PieceRecord struct {
	Side string `yaml:"side" json:"side"`
	Type string `yaml:"type" json:"type"`
	At   string `yaml:"at" json:"at"`
}

// Load 读文件并解析成摆子列表
func Load(filename string) ([]xiangqi.Placement, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	placements, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	return placements, nil
}

// Parse 只检查每条记录本身；帅的数量、重叠等交给 NewGameFromPlacements
func Parse(b []byte) ([]xiangqi.Placement, error) {
	var setup Setup
	if err := yaml.Unmarshal(b, &setup); err != nil {
		return nil, err
	}
	return Placements(setup.Pieces)
}

// Placements 把文本记录转换成摆子列表
func Placements(records []PieceRecord) ([]xiangqi.Placement, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no pieces", xiangqi.ErrInvalidSetup)
	}

	out := make([]xiangqi.Placement, 0, len(records))
	for i, rec := range records {
		side, ok := xiangqi.ParseSide(rec.Side)
		if !ok {
			return nil, fmt.Errorf("%w: piece %d: unknown side %q", xiangqi.ErrInvalidSetup, i, rec.Side)
		}
		kind, ok := xiangqi.ParseArchetype(rec.Type)
		if !ok {
			return nil, fmt.Errorf("%w: piece %d: unknown type %q", xiangqi.ErrInvalidSetup, i, rec.Type)
		}
		at, ok := xiangqi.ParseSquare(rec.At)
		if !ok {
			return nil, fmt.Errorf("%w: piece %d: bad square %q", xiangqi.ErrInvalidSetup, i, rec.At)
		}
		out = append(out, xiangqi.Placement{Side: side, Archetype: kind, At: at})
	}
	return out, nil
}

// Marshal 把摆子列表写回 YAML（cmd/debug 导出用）
func Marshal(name string, placements []xiangqi.Placement) ([]byte, error) {
	setup := Setup{Name: name, Pieces: make([]PieceRecord, 0, len(placements))}
	for _, p := range placements {
		setup.Pieces = append(setup.Pieces, PieceRecord{
			Side: p.Side.String(),
			Type: p.Archetype.String(),
			At:   p.At.String(),
		})
	}
	return yaml.Marshal(&setup)
}

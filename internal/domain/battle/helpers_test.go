package battle

import "github.com/riskibarqy/knight-arena/internal/domain/knight"

func kn(id, name string) knight.Knight {
	return knight.Knight{ID: id, Name: name}
}

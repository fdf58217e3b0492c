package memory

import (
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
)

var seedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedKnights is the starter catalog loaded in memory mode.
func SeedKnights() []knight.Knight {
	names := []struct{ id, name string }{
		{"0b6f1c3e-1a2d-4c55-9f10-6a2b7d1e0001", "Seiya de Pégaso"},
		{"1c7a2d4f-2b3e-4d66-8a21-7b3c8e2f0002", "Shiryu de Dragão"},
		{"2d8b3e5a-3c4f-4e77-9b32-8c4d9f3a0003", "Hyoga de Cisne"},
		{"3e9c4f6b-4d5a-4f88-8c43-9d5e0a4b0004", "Shun de Andrômeda"},
		{"4fad5a7c-5e6b-4a99-9d54-0e6f1b5c0005", "Ikki de Fênix"},
		{"50be6b8d-6f7c-4baa-8e65-1f7a2c6d0006", "Saga de Gêmeos"},
		{"61cf7c9e-7a8d-4cbb-9f76-2a8b3d7e0007", "Shaka de Virgem"},
		{"72d08daf-8b9e-4dcc-8a87-3b9c4e8f0008", "Mu de Áries"},
		{"83e19eb0-9caf-4edd-9b98-4cad5f9a0009", "Aiolia de Leão"},
		{"94f2afc1-adb0-4fee-8ca9-5dbe6a0b0010", "Camus de Aquário"},
	}

	out := make([]knight.Knight, 0, len(names))
	for i, n := range names {
		created := seedTime.Add(time.Duration(i) * time.Minute)
		out = append(out, knight.Knight{
			ID:        n.id,
			Name:      n.name,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return out
}

func SeedStigmas() []stigma.Stigma {
	return []stigma.Stigma{
		{ID: "a0c3b1d2-0e1f-4a10-8b20-c0d1e2f30001", Name: "Cosmo Ardente", CreatedAt: seedTime},
		{ID: "b1d4c2e3-1f2a-4b21-9c31-d1e2f3a40002", Name: "Sétimo Sentido", CreatedAt: seedTime},
		{ID: "c2e5d3f4-2a3b-4c32-8d42-e2f3a4b50003", Name: "Armadura de Ouro", CreatedAt: seedTime},
		{ID: "d3f6e4a5-3b4c-4d43-9e53-f3a4b5c60004", Name: "Sangue de Atena", CreatedAt: seedTime},
	}
}

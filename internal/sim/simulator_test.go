package sim

import (
	"testing"
	"time"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

func unit(r domain.Rarity, stars int, types ...domain.Synergy) domain.Creature {
	return domain.Creature{Rarity: r, Stars: stars, Types: types}
}

func TestStartDecidesByPower(t *testing.T) {
	s := New()
	tests := []struct {
		name string
		mine []domain.Creature
		them []domain.Creature
		want domain.BattleResult
	}{
		{"stronger wins", []domain.Creature{unit(domain.RarityRare, 2)}, []domain.Creature{unit(domain.RarityCommon, 1)}, domain.ResultWin},
		{"weaker loses", []domain.Creature{unit(domain.RarityCommon, 1)}, []domain.Creature{unit(domain.RarityEpic, 1)}, domain.ResultDefeat},
		{"equal draws", []domain.Creature{unit(domain.RarityCommon, 2)}, []domain.Creature{unit(domain.RarityUncommon, 1)}, domain.ResultDraw},
		{"empty boards draw", nil, nil, domain.ResultDraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := s.Start(ports.BattleSetup{
				Stage:    4,
				Player:   ports.BattleSide{Team: tt.mine},
				Opponent: ports.BattleSide{Team: tt.them},
			})
			if got := b.Result(); got != tt.want {
				t.Errorf("Result() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBattleLengthAndDamage(t *testing.T) {
	s := New()
	b := s.Start(ports.BattleSetup{
		Player:   ports.BattleSide{Team: []domain.Creature{unit(domain.RarityCommon, 1)}},
		Opponent: ports.BattleSide{Team: []domain.Creature{unit(domain.RarityEpic, 1), unit(domain.RarityEpic, 1)}},
	})
	if b.Update(7 * time.Second) {
		t.Fatalf("battle finished too early")
	}
	if !b.Update(time.Second) {
		t.Fatalf("battle should be over after 8s")
	}
	if got := b.Damage(5); got != 2+3 {
		t.Errorf("Damage(5) = %d, want 5", got)
	}
	if b.ID() == "" {
		t.Errorf("battle without id")
	}
}

func TestStopEndsBattle(t *testing.T) {
	b := New().StartPVE(ports.PVESetup{Encounter: 0})
	b.Stop()
	if !b.Update(0) {
		t.Errorf("stopped battle should report done")
	}
}

func TestPVEShinyIsHarder(t *testing.T) {
	s := New()
	team := []domain.Creature{unit(domain.RarityCommon, 3)}
	normal := s.StartPVE(ports.PVESetup{Encounter: 0, Player: ports.BattleSide{Team: team}})
	shiny := s.StartPVE(ports.PVESetup{Encounter: 0, Shiny: true, Player: ports.BattleSide{Team: team}})
	if normal.Result() != domain.ResultWin || shiny.Result() != domain.ResultDefeat {
		t.Errorf("normal=%s shiny=%s", normal.Result(), shiny.Result())
	}
}

func TestWeather(t *testing.T) {
	s := New()
	fire := unit(domain.RarityCommon, 1, domain.SynergyFire)
	water := unit(domain.RarityCommon, 1, domain.SynergyWater)

	if w := s.Weather([]domain.Creature{fire, fire}, []domain.Creature{water}); w != domain.WeatherNeutral {
		t.Errorf("weather = %s, want neutral", w)
	}
	if w := s.Weather([]domain.Creature{fire, fire}, []domain.Creature{fire, fire, water}); w != domain.WeatherSun {
		t.Errorf("weather = %s, want sun", w)
	}
}

func TestAchievements(t *testing.T) {
	b := New().Start(ports.BattleSetup{
		Player: ports.BattleSide{
			Team:      []domain.Creature{unit(domain.RarityRare, 1)},
			Synergies: domain.Synergies{domain.SynergyFlying: 3},
		},
		Opponent: ports.BattleSide{Team: []domain.Creature{unit(domain.RarityUncommon, 1)}},
	})
	got := map[domain.Title]bool{}
	for _, ti := range b.Achievements() {
		got[ti] = true
	}
	if !got[domain.TitleDuelist] || !got[domain.TitleSurvivor] || !got[domain.TitleBirdKeeper] {
		t.Errorf("achievements = %v", b.Achievements())
	}
}

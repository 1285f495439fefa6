package game

import "testing"

func TestAbilityRoundTrip(t *testing.T) {
	u := &Unit{}
	u.SetAbilities([]AbilityCode{"ARM", "AMS"})
	got := u.Abilities()
	if len(got) != 2 || got[0] != "ARM" || got[1] != "AMS" {
		t.Fatalf("abilities round trip lost order: %v", got)
	}
	if !u.HasAbility("AMS") || u.HasAbility("ECM") {
		t.Fatalf("HasAbility lookup wrong")
	}
	u.SetAbilities(nil)
	if u.Abilities() != nil {
		t.Fatalf("expected empty ability list after reset")
	}
}

func TestDamageForBandWeaponHits(t *testing.T) {
	u := &Unit{Kind: KindMech, DamageShort: 3, DamageMedium: 2, DamageLong: 1}
	if got := u.DamageForBand(BandShort); got != 3 {
		t.Fatalf("short damage = %d, want 3", got)
	}
	u.WeaponHits = 2
	if got := u.DamageForBand(BandShort); got != 1 {
		t.Fatalf("short damage with 2 weapon hits = %d, want 1", got)
	}
	if got := u.DamageForBand(BandLong); got != 0 {
		t.Fatalf("long damage should floor at zero, got %d", got)
	}
	if got := u.DamageForBand(BandExtreme); got != 0 {
		t.Fatalf("extreme damage with no rating = %d, want 0", got)
	}
}

func TestDamageForBandInfantryScaling(t *testing.T) {
	u := &Unit{Kind: KindInfantry, DamageShort: 4, Troops: 20}
	if got := u.DamageForBand(BandShort); got != 4 {
		t.Fatalf("full squad damage = %d, want 4", got)
	}
	u.Casualties = 10
	if got := u.DamageForBand(BandShort); got != 2 {
		t.Fatalf("half squad damage = %d, want 2", got)
	}
	// A squad at 1/20 strength still does at least 1.
	u.Casualties = 19
	if got := u.DamageForBand(BandShort); got != 1 {
		t.Fatalf("near-wiped squad damage = %d, want 1", got)
	}
}

func TestStrengthRatio(t *testing.T) {
	u := &Unit{Kind: KindInfantry, Troops: 20, Casualties: 5}
	if got := u.StrengthRatio(); got != 0.75 {
		t.Fatalf("strength ratio = %f, want 0.75", got)
	}
	m := &Unit{Kind: KindMech}
	if got := m.StrengthRatio(); got != 1 {
		t.Fatalf("non-infantry strength ratio = %f, want 1", got)
	}
}

func TestRemainingArmorAndStructure(t *testing.T) {
	u := &Unit{Armor: 5, Structure: 4, ArmorDamage: 7, StructureDamage: 2}
	if got := u.RemainingArmor(); got != 0 {
		t.Fatalf("over-depleted armor should clamp to 0, got %d", got)
	}
	if got := u.RemainingStructure(); got != 2 {
		t.Fatalf("remaining structure = %d, want 2", got)
	}
}

func TestStatusEffectSet(t *testing.T) {
	u := &Unit{}
	u.AddEffect(StatusProne)
	u.AddEffect(StatusProne)
	u.AddEffect(StatusShutdown)
	if !u.HasEffect(StatusProne) || !u.HasEffect(StatusShutdown) {
		t.Fatalf("effects missing after add: %q", u.Effects)
	}
	if len(u.EffectList()) != 2 {
		t.Fatalf("duplicate add should not duplicate, got %v", u.EffectList())
	}
	u.RemoveEffect(StatusProne)
	if u.HasEffect(StatusProne) {
		t.Fatalf("prone should be removed")
	}
	if !u.HasEffect(StatusShutdown) {
		t.Fatalf("remove must not disturb other effects")
	}
}

func TestNewUnitFromTemplate(t *testing.T) {
	tpl := UnitTemplate{
		Name: "Lancer", Kind: KindMech, Weight: 55,
		Walk: 4, Run: 6, Armor: 6, Structure: 5,
		DamageShort: 3, HeatCapacity: 5,
		Abilities: []AbilityCode{"ARM"},
	}
	u := NewUnitFromTemplate(tpl, SideBravo, "", Coord{Q: 2, R: 7}, FacingNorth, ConstructionBonus{Armor: 1, Structure: 1})
	if u.Name != "Lancer" {
		t.Fatalf("empty name should default to template name, got %q", u.Name)
	}
	if u.Armor != 7 || u.Structure != 6 {
		t.Fatalf("construction bonus not applied: armor %d structure %d", u.Armor, u.Structure)
	}
	if u.Position() != (Coord{Q: 2, R: 7}) || u.Side != SideBravo {
		t.Fatalf("placement wrong: %v %s", u.Position(), u.Side)
	}
	if !u.HasAbility("ARM") {
		t.Fatalf("template abilities not carried over")
	}
}

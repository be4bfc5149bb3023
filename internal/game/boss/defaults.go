package boss

// Default returns the built-in boss tuning.
//
// Postcondition: the returned Catalog has passed Validate.
func Default() *Catalog {
	return MustCatalog(BelialConfig(), BazuzuConfig(), AtlasConfig())
}

// BelialConfig returns the built-in definition of Belial.
func BelialConfig() *Config {
	return &Config{
		Archetype:  Belial,
		Name:       "Belial, Lord of Evil Spirits",
		MaxHP:      20,
		GoldReward: 1000,
		Skills: SkillTable{
			{ID: SkillAttack, Name: "Attack", Chance: 0.25, Category: CategoryAttack, DamageType: DamagePhysical,
				Damage: 6, StrongDamage: 12, StrongChance: 0.5},
			{ID: SkillHeal, Name: "Midheal", Chance: 0.15, Category: CategoryHeal, Heal: 3},
			{ID: SkillFlames, Name: "Scorching Flames", Chance: 0.15, Category: CategoryMagic, DamageType: DamageBreath,
				Damage: 5},
			{ID: SkillSpell, Name: "Boom", Chance: 0.25, Category: CategoryMagic, DamageType: DamageMagic,
				Damage: 4, DesperateDamage: 8, DesperateName: "Kaboom"},
			{ID: SkillShield, Name: "Buff", Chance: 0.20, Category: CategoryBuff},
		},
	}
}

// BazuzuConfig returns the built-in definition of Bazuzu.
func BazuzuConfig() *Config {
	return &Config{
		Archetype:  Bazuzu,
		Name:       "Bazuzu, Lord of Evil Spirits",
		MaxHP:      25,
		GoldReward: 1100,
		Skills: SkillTable{
			{ID: SkillAttack, Name: "Attack", Chance: 0.25, Category: CategoryAttack, DamageType: DamagePhysical,
				Damage: 7, CritChance: 0.25},
			{ID: SkillDeathCurse, Name: "Whack", Chance: 0.25, Category: CategoryMagic, DamageType: DamageMagic,
				SuccessChance: 0.10, Effect: EffectResetToStart},
			{ID: SkillSilence, Name: "Fizzle", Chance: 0.20, Category: CategoryDebuff, DamageType: DamageMagic,
				SuccessChance: 1.0, Effect: EffectSealItems, Magnitude: 2},
			{ID: SkillBlizzard, Name: "Freezing Blizzard", Chance: 0.10, Category: CategoryMagic, DamageType: DamageBreath,
				Damage: 7},
			{ID: SkillSearingLight, Name: "Zap", Chance: 0.10, Category: CategoryMagic, DamageType: DamageMagic,
				Damage: 6},
			{ID: SkillSleep, Name: "Snooze", Chance: 0.10, Category: CategoryDebuff, DamageType: DamageMagic,
				SuccessChance: 0.5, Effect: EffectSkipTurns, Magnitude: 2},
		},
	}
}

// AtlasConfig returns the built-in definition of Atlas.
func AtlasConfig() *Config {
	return &Config{
		Archetype:  Atlas,
		Name:       "Atlas, Lord of Evil Spirits",
		MaxHP:      30,
		GoldReward: 1200,
		Skills: SkillTable{
			{ID: SkillAttack, Name: "Attack", Chance: 0.90, Category: CategoryAttack, DamageType: DamagePhysical,
				Damage: 8, CritChance: 0.20},
			{ID: SkillWait, Name: "Wait", Chance: 0.10, Category: CategoryBuff},
		},
		DesperateSkills: SkillTable{
			{ID: SkillAttack, Name: "Attack", Chance: 0.70, Category: CategoryAttack, DamageType: DamagePhysical,
				Damage: 8, CritChance: 0.20},
			{ID: SkillCharge, Name: "Psyche Up", Chance: 0.20, Category: CategoryBuff},
			{ID: SkillWait, Name: "Wait", Chance: 0.10, Category: CategoryBuff},
		},
	}
}

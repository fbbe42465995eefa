package tournament

// Curated competition table. Adding a competition is a data change only;
// weighting rules live in the rating engine.
var entries = []Entry{
	// FIFA global tournaments.
	{LeagueID: 1, Name: "FIFA World Cup", Confederation: FIFA, Tier: TierGlobal, BaseImportance: 50, LogoURL: "https://upload.wikimedia.org/wikipedia/en/thumb/6/67/2022_FIFA_World_Cup.svg/200px-2022_FIFA_World_Cup.svg.png"},
	{LeagueID: 21, Name: "FIFA Confederations Cup", Confederation: FIFA, Tier: TierGlobal, BaseImportance: 40},
	{LeagueID: 480, Name: "Olympic Football Tournament", Confederation: FIFA, Tier: TierGlobal, BaseImportance: 25},
	{LeagueID: 20, Name: "FIFA U-20 World Cup", Confederation: FIFA, Tier: TierYouth, BaseImportance: 25},
	{LeagueID: 23, Name: "FIFA U-17 World Cup", Confederation: FIFA, Tier: TierYouth, BaseImportance: 25},
	{LeagueID: 486, Name: "FIFA Arab Cup", Confederation: FIFA, Tier: TierSubRegional, BaseImportance: 15},

	// World Cup qualifiers.
	{LeagueID: 29, Name: "World Cup Qualification - Africa", Confederation: CAF, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 30, Name: "World Cup Qualification - Asia", Confederation: AFC, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 31, Name: "World Cup Qualification - CONCACAF", Confederation: CONCACAF, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 32, Name: "World Cup Qualification - Europe", Confederation: UEFA, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 33, Name: "World Cup Qualification - Oceania", Confederation: OFC, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 34, Name: "World Cup Qualification - South America", Confederation: CONMEBOL, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 37, Name: "World Cup Intercontinental Play-offs", Confederation: FIFA, Tier: TierQualifier, BaseImportance: 25},

	// UEFA.
	{LeagueID: 4, Name: "UEFA European Championship", Confederation: UEFA, Tier: TierContinental, BaseImportance: 35, LogoURL: "https://upload.wikimedia.org/wikipedia/en/thumb/9/96/UEFA_Euro_2020_Logo.svg/200px-UEFA_Euro_2020_Logo.svg.png"},
	{LeagueID: 960, Name: "UEFA Euro Qualification", Confederation: UEFA, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 5, Name: "UEFA Nations League", Confederation: UEFA, Tier: TierNationsLeague, BaseImportance: 15},
	{LeagueID: 577, Name: "UEFA U-21 Championship", Confederation: UEFA, Tier: TierYouth, BaseImportance: 20},
	{LeagueID: 578, Name: "UEFA U-19 Championship", Confederation: UEFA, Tier: TierYouth, BaseImportance: 15},
	{LeagueID: 579, Name: "UEFA U-17 Championship", Confederation: UEFA, Tier: TierYouth, BaseImportance: 15},

	// CAF.
	{LeagueID: 6, Name: "Africa Cup of Nations", Confederation: CAF, Tier: TierContinental, BaseImportance: 35, LogoURL: "https://upload.wikimedia.org/wikipedia/en/thumb/0/0e/2023_Africa_Cup_of_Nations_logo.svg/200px-2023_Africa_Cup_of_Nations_logo.svg.png"},
	{LeagueID: 36, Name: "Africa Cup of Nations Qualification", Confederation: CAF, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 19, Name: "African Nations Championship", Confederation: CAF, Tier: TierSubRegional, BaseImportance: 20},
	{LeagueID: 1163, Name: "CHAN Qualification", Confederation: CAF, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 39, Name: "Africa U-20 Cup of Nations", Confederation: CAF, Tier: TierYouth, BaseImportance: 20},
	{LeagueID: 40, Name: "Africa U-17 Cup of Nations", Confederation: CAF, Tier: TierYouth, BaseImportance: 15},

	// AFC.
	{LeagueID: 7, Name: "AFC Asian Cup", Confederation: AFC, Tier: TierContinental, BaseImportance: 35},
	{LeagueID: 35, Name: "AFC Asian Cup Qualification", Confederation: AFC, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 803, Name: "Asian Games Football", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 25},
	{LeagueID: 25, Name: "Gulf Cup of Nations", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 28, Name: "SAFF Championship", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 24, Name: "ASEAN Championship", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 1008, Name: "CAFA Nations Cup", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 26, Name: "WAFF Championship", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 27, Name: "EAFF E-1 Championship", Confederation: AFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 38, Name: "AFC U-20 Asian Cup", Confederation: AFC, Tier: TierYouth, BaseImportance: 20},

	// CONCACAF.
	{LeagueID: 22, Name: "CONCACAF Gold Cup", Confederation: CONCACAF, Tier: TierContinental, BaseImportance: 35},
	{LeagueID: 858, Name: "CONCACAF Gold Cup Qualification", Confederation: CONCACAF, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 536, Name: "CONCACAF Nations League", Confederation: CONCACAF, Tier: TierNationsLeague, BaseImportance: 15},
	{LeagueID: 808, Name: "CONCACAF Nations League Qualification", Confederation: CONCACAF, Tier: TierNationsLeague, BaseImportance: 15},
	{LeagueID: 804, Name: "Caribbean Cup", Confederation: CONCACAF, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 805, Name: "Copa Centroamericana", Confederation: CONCACAF, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 881, Name: "CONCACAF Olympic Qualification", Confederation: CONCACAF, Tier: TierQualifier, BaseImportance: 25},

	// CONMEBOL.
	{LeagueID: 9, Name: "Copa América", Confederation: CONMEBOL, Tier: TierContinental, BaseImportance: 35, LogoURL: "https://upload.wikimedia.org/wikipedia/en/thumb/1/1a/Copa_Am%C3%A9rica_logo.svg/200px-Copa_Am%C3%A9rica_logo.svg.png"},
	{LeagueID: 11, Name: "CONMEBOL Pre-Olympic Tournament", Confederation: CONMEBOL, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 885, Name: "CONMEBOL Olympic Qualification", Confederation: CONMEBOL, Tier: TierQualifier, BaseImportance: 25},

	// OFC.
	{LeagueID: 806, Name: "OFC Nations Cup", Confederation: OFC, Tier: TierContinental, BaseImportance: 35},
	{LeagueID: 807, Name: "Pacific Games Football", Confederation: OFC, Tier: TierSubRegional, BaseImportance: 15},
	{LeagueID: 884, Name: "OFC Olympic Qualification", Confederation: OFC, Tier: TierQualifier, BaseImportance: 25},

	// Olympic qualifiers.
	{LeagueID: 882, Name: "CAF Olympic Qualification", Confederation: CAF, Tier: TierQualifier, BaseImportance: 25},
	{LeagueID: 883, Name: "AFC Olympic Qualification", Confederation: AFC, Tier: TierQualifier, BaseImportance: 25},

	// Invitational tournaments.
	{LeagueID: 669, Name: "Kirin Cup", Confederation: All, Tier: TierFriendly, BaseImportance: 10},
	{LeagueID: 670, Name: "China Cup", Confederation: All, Tier: TierFriendly, BaseImportance: 10},
	{LeagueID: 671, Name: "King's Cup", Confederation: All, Tier: TierFriendly, BaseImportance: 10},

	// Friendlies.
	{LeagueID: 10, Name: "International Friendlies", Confederation: All, Tier: TierFriendly, BaseImportance: 10},
}

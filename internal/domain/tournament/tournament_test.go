package tournament_test

import (
	"testing"

	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/smartystreets/goconvey/convey"
)

func TestRegistryLookup(t *testing.T) {
	convey.Convey("Given a registry", t, func() {
		reg := tournament.New()

		convey.Convey("When looking up the World Cup", func() {
			e := reg.Lookup(1)

			convey.Convey("Then it resolves to the global tier", func() {
				convey.So(e.Name, convey.ShouldEqual, "FIFA World Cup")
				convey.So(e.Confederation, convey.ShouldEqual, tournament.FIFA)
				convey.So(e.Tier, convey.ShouldEqual, tournament.TierGlobal)
				convey.So(e.BaseImportance, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When looking up a continental championship", func() {
			e := reg.Lookup(6)

			convey.Convey("Then it resolves to tier 2", func() {
				convey.So(e.Confederation, convey.ShouldEqual, tournament.CAF)
				convey.So(e.Tier, convey.ShouldEqual, tournament.TierContinental)
				convey.So(e.BaseImportance, convey.ShouldEqual, 35)
			})
		})

		convey.Convey("When looking up an unknown league id", func() {
			e := reg.Lookup(99999)

			convey.Convey("Then it falls back to a friendly classification", func() {
				convey.So(e.LeagueID, convey.ShouldEqual, 99999)
				convey.So(e.Confederation, convey.ShouldEqual, tournament.All)
				convey.So(e.Tier, convey.ShouldEqual, tournament.TierFriendly)
				convey.So(e.BaseImportance, convey.ShouldEqual, tournament.FriendlyBaseImportance)
				convey.So(reg.Known(99999), convey.ShouldBeFalse)
			})
		})
	})
}

func TestRegistryFilters(t *testing.T) {
	convey.Convey("Given a registry", t, func() {
		reg := tournament.New()

		convey.Convey("When filtering by confederation", func() {
			uefa := reg.ByConfederation(tournament.UEFA)

			convey.Convey("Then UEFA entries and the ALL wildcard group are included", func() {
				var sawUEFA, sawWildcard bool
				for _, e := range uefa {
					switch e.Confederation {
					case tournament.UEFA:
						sawUEFA = true
					case tournament.All:
						sawWildcard = true
					default:
						t.Fatalf("unexpected confederation %s", e.Confederation)
					}
				}
				convey.So(sawUEFA, convey.ShouldBeTrue)
				convey.So(sawWildcard, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When filtering by tier", func() {
			finals := reg.ByTier(tournament.TierContinental)

			convey.Convey("Then only tier-2 championships are returned", func() {
				convey.So(len(finals), convey.ShouldBeGreaterThanOrEqualTo, 6)
				for _, e := range finals {
					convey.So(e.Tier, convey.ShouldEqual, tournament.TierContinental)
				}
			})
		})

		convey.Convey("When listing everything", func() {
			all := reg.All()
			ids := reg.LeagueIDs()

			convey.Convey("Then counts line up and copies are independent", func() {
				convey.So(len(all), convey.ShouldEqual, reg.Count())
				convey.So(len(ids), convey.ShouldEqual, reg.Count())

				all[0].Name = "mutated"
				convey.So(reg.Lookup(all[0].LeagueID).Name, convey.ShouldNotEqual, "mutated")
			})
		})
	})
}

package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/openfightdb/fighterapi/middleware"
	"github.com/openfightdb/fighterapi/store"
)

const detailsPath = "/fighter_details/name/:name/nickname/:nickname/surname/:surname"

// Mount registers every route on the echo instance. The base_fighter and
// extended_fighter trees share handlers parameterized by projection; DDL
// routes and /me sit behind the JWT middleware.
func (h *Handler) Mount(e *echo.Echo, jwtKey []byte) {
	api := e.Group("/api/v1")

	base := api.Group("/base_fighter")
	base.GET("", h.ListFighters(store.Base))
	base.GET("/id/:fighter_id", h.GetFighterByID(store.Base))
	base.GET("/country/:country", h.GetFightersByCountry(store.Base))
	base.GET(detailsPath, h.GetFighterByDetails(store.Base))
	base.GET("/top/:field", h.TopFighters(store.Base))
	base.POST("", h.CreateFighter(store.Base))
	base.POST("/multiple", h.CreateFighters(store.Base))
	base.PUT("/id/:fighter_id", h.UpdateFighterByID(store.Base))
	base.PUT(detailsPath, h.UpdateFighterByDetails(store.Base))
	base.DELETE("/id/:fighter_id", h.DeleteFighter())
	base.DELETE("/multiple", h.DeleteFighters())

	ext := api.Group("/extended_fighter")
	ext.GET("", h.ListFighters(store.Extended))
	ext.GET("/id/:fighter_id", h.GetFighterByID(store.Extended))
	ext.GET("/country/:country", h.GetFightersByCountry(store.Extended))
	ext.GET(detailsPath, h.GetFighterByDetails(store.Extended))
	ext.GET("/top/:field", h.TopFighters(store.Extended))
	ext.GET("/search", h.SearchFighters(store.Extended))
	ext.POST("", h.CreateFighter(store.Extended))
	ext.POST("/multiple", h.CreateFighters(store.Extended))
	ext.PUT("/id/:fighter_id", h.UpdateFighterByID(store.Extended))
	ext.PUT(detailsPath, h.UpdateFighterByDetails(store.Extended))
	ext.DELETE("/id/:fighter_id", h.DeleteFighter())
	ext.DELETE("/multiple", h.DeleteFighters())

	// Static segments win over :country, so these never shadow lookups.
	ext.GET("/country/wins", h.GroupedStat("country", "wins", "avg", "avg_wins"))
	ext.GET("/country/loss", h.GroupedStat("country", "loss", "avg", "avg_loss"))
	ext.GET("/weightclass/age", h.GroupedStat("weight_class", "age", "avg", "avg_age"))
	ext.GET("/weightclass/wins", h.GroupedStat("weight_class", "wins", "avg", "avg_wins"))
	ext.GET("/weightclass/loss", h.GroupedStat("weight_class", "loss", "avg", "avg_loss"))

	auth := api.Group("/auth")
	auth.POST("", h.Register)
	auth.GET("", h.Users)
	auth.POST("/token", h.Token)

	api.GET("/me", h.Me, mw.JWT(jwtKey))

	ddl := api.Group("/db", mw.JWT(jwtKey))
	ddl.POST("/column", h.AddColumn)
	ddl.DELETE("/column", h.RemoveColumn)
	ddl.PUT("/column/rename", h.RenameColumn)
	ddl.PUT("/column/change_type", h.ChangeColumnType)
	ddl.POST("/table", h.CreateTable)
	ddl.DELETE("/table", h.DropTable)
	ddl.DELETE("/table/truncate", h.TruncateTable)
}

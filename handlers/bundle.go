package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Planner     *PlannerHandler
	Catalog     *CatalogHandler
	Itineraries *ItineraryHandler
}

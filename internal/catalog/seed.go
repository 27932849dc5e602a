package catalog

// builtinConfigurations is the catalog shipped with the binary.
var builtinConfigurations = []Configuration{
	{
		Key:   "a320",
		Label: "Airbus A320",
		Image: "plane-a320.png",
		Zones: []ZoneTemplate{
			{ID: "z1", Label: "Cockpit", Required: []string{"Pilot", "Co-Pilot"}, X: 40, Y: 120},
			{ID: "z2", Label: "Cabin", Required: []string{"Passenger", "Stewardess", "Luggage"}, X: 260, Y: 120},
		},
	},
	{
		Key:   "b737",
		Label: "Boeing 737",
		Image: "plane-b737.png",
		Zones: []ZoneTemplate{
			{ID: "cockpit", Label: "Cockpit", Required: []string{"Captain", "First Officer"}, X: 30, Y: 130},
			{ID: "galley", Label: "Forward Galley", Required: []string{"Purser", "Trolley"}, X: 140, Y: 110},
			{ID: "cabin", Label: "Cabin", Required: []string{"Passenger", "Flight Attendant"}, X: 300, Y: 120},
			{ID: "hold", Label: "Cargo Hold", Required: []string{"Luggage", "Mail"}, X: 300, Y: 220},
		},
	},
	{
		Key:   "parts",
		Label: "Airframe Parts",
		Image: "plane.png",
		Zones: []ZoneTemplate{
			{ID: "zone1", Label: "Wing Pylon", Required: []string{"Engine"}, X: 100, Y: 180},
			{ID: "zone2", Label: "Empennage", Required: []string{"Tail"}, X: 450, Y: 50},
		},
	},
}

// Builtin returns the catalog shipped with the binary.
func Builtin() *Catalog {
	c, err := New(builtinConfigurations)
	if err != nil {
		panic("builtin catalog: " + err.Error())
	}
	return c
}

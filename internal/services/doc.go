// Package services defines the [Catalog] and [TitleLookup] interfaces for the
// external collaborators and implements them for the Spotify Web API and the
// YouTube oEmbed endpoint.
package services

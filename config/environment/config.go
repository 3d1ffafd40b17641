package environment

import "os"

// GetGooglePlacesKey returns the Google Places API key
func GetGooglePlacesKey() string {
	return os.Getenv("GOOGLE_PLACES_API_KEY")
}

// GetOpenAIKey returns the OpenAI API key; empty disables the plan summarizer
func GetOpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// GetFirebaseKey returns the Base64 encoded Firebase service-account JSON
func GetFirebaseKey() string {
	return os.Getenv("FIREBASE_CREDENTIALS_BASE64")
}

// GetFirebaseProjectID returns the Firebase project id
func GetFirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

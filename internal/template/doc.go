// Package template loads and validates the declarative template configuration
// (install.yaml) that describes what a console project should contain.
//
// A template may be written as YAML or JSON:
//
//	workspaces:
//	  - Dev
//	runtime: true
//	apis:
//	  - code: AssetComputeSDK
//	  - code: GraphQLServiceSDK
//	productProfiles:
//	  - sdkCode: AssetComputeSDK
//	    licenseConfigs:
//	      - id: "131094414"
//	        productId: 8F5Z52CBD0V8PPA0MENP9DS0Y8
//	hooks:
//	  - post-app-deploy
//
// Keys not listed above are ignored so that templates can carry metadata for
// other tools.
package template
